package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"audiovault/internal/api/rest/middleware"
	"audiovault/internal/logger"
	"audiovault/internal/model"
)

// AudioService defines upload and listing of audio files.
type AudioService interface {
	Upload(ctx context.Context, user model.User, fileName, originalName, contentType string, r io.Reader) (model.AudioFile, error)
	ListForUser(ctx context.Context, user model.User) ([]model.AudioFile, error)
}

// Audio handles audio file endpoints.
type Audio struct {
	audioService AudioService
	logger       *logger.Logger
}

// NewAudio creates a new Audio handler.
func NewAudio(audioService AudioService, logger *logger.Logger) *Audio {
	return &Audio{audioService: audioService, logger: logger}
}

// Upload accepts a multipart form with a "file" part and a "file_name"
// field naming the stored file.
func (h *Audio) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	fileName := c.PostForm("file_name")
	if fileName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "file_name is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer f.Close()

	record, err := h.audioService.Upload(
		c.Request.Context(),
		user,
		fileName,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("audio file uploaded",
		"uid", user.UID,
		"file_name", record.FileName)

	c.JSON(http.StatusCreated, AudioFileResponse{
		ID:       record.ID,
		FileName: record.FileName,
		FilePath: record.FilePath,
	})
}

// MyFiles lists the caller's uploaded files.
func (h *Audio) MyFiles(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	files, err := h.audioService.ListForUser(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAudioFileResponses(files))
}
