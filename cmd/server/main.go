package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"audiovault/internal/api/rest/router"
	"audiovault/internal/config"
	"audiovault/internal/logger"
	"audiovault/internal/model"
	"audiovault/internal/oauth/yandex"
	"audiovault/internal/repository/postgres"
	"audiovault/internal/server"
	"audiovault/internal/service"
	"audiovault/internal/storage/local"
	s3storage "audiovault/internal/storage/minio"
	"audiovault/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// Absent .env is fine, the environment may carry everything.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	audioRepo := postgres.NewAudioFileRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())

	fileStorage, err := newFileStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize file storage", "error", err)
	}

	provider := yandex.NewClient(cfg.Yandex.AppID, cfg.Yandex.ClientSecret, cfg.Yandex.RedirectURI)

	authService := service.NewAuth(userRepo, tokenManager, logger)
	tokenService := service.NewTokenService(tokenManager, logger)
	userService := service.NewUser(userRepo, logger)
	oauthService := service.NewOAuth(userRepo, provider, cfg.Yandex.AppID, logger)
	audioService := service.NewAudio(audioRepo, fileStorage, logger)

	engine := router.New(router.Deps{
		AuthService:  authService,
		TokenService: tokenService,
		UserService:  userService,
		OAuthService: oauthService,
		AudioService: audioService,
		UserResolver: authService,
		Logger:       logger,
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler: engine,
	}

	var sl server.Listener
	if cfg.HTTP.TLSEnabled() {
		sl = server.NewTLSListener(cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile)
	} else {
		sl = server.NewPlainListener()
	}

	listener, err := sl.Listen(httpServer.Addr)
	if err != nil {
		logger.Fatal("failed to open listener", "error", err, "address", httpServer.Addr)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "address", httpServer.Addr)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newFileStorage builds the configured storage backend: a local directory or
// an S3-compatible object store.
func newFileStorage(ctx context.Context, cfg *config.Config) (model.FileStorage, error) {
	switch cfg.Storage.Backend {
	case "local":
		return local.New(cfg.Storage.UploadDir)
	case "s3":
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return s3storage.NewClient(ctx, minioClient, cfg.Minio.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
