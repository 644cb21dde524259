package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"audiovault/internal/api/rest/middleware"
	"audiovault/internal/logger"
	"audiovault/internal/model"
	"audiovault/internal/service"
)

// UserService defines account management operations.
type UserService interface {
	Register(ctx context.Context, input service.RegisterInput) (model.User, error)
	UpdateProfile(ctx context.Context, user model.User, input service.UpdateInput) (model.User, error)
	SetSuperuser(ctx context.Context, actor model.User, targetUID uuid.UUID, isSuperuser bool) (model.User, error)
	Remove(ctx context.Context, actor model.User, targetUID uuid.UUID) error
	List(ctx context.Context) ([]model.User, error)
}

// User handles account endpoints.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{userService: userService, logger: logger}
}

const minPasswordLen = 8

// validatePassword enforces length and the printable ASCII range.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errors.New("password must be at least 8 characters long")
	}
	for _, r := range password {
		if r < 0x21 || r > 0x7e {
			return errors.New("password contains invalid characters")
		}
	}

	return nil
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Create registers a local account.
func (h *User) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := validatePassword(req.Password); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("user registered", "uid", user.UID)

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// List returns all accounts.
func (h *User) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

type updateMeRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

// UpdateMe applies a partial update to the caller's own profile.
func (h *User) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user, service.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

type setSuperuserRequest struct {
	IsSuperuser *bool `json:"is_superuser" binding:"required"`
}

// SetSuperuser grants or revokes the superuser flag on another account.
func (h *User) SetSuperuser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	targetUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "invalid user uid"})
		return
	}

	var req setSuperuserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	updated, err := h.userService.SetSuperuser(c.Request.Context(), actor, targetUID, *req.IsSuperuser)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("superuser flag changed",
		"actor", actor.UID,
		"target", targetUID,
		"is_superuser", *req.IsSuperuser)

	c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete removes another account. Self-deletion is rejected.
func (h *User) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	targetUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "invalid user uid"})
		return
	}

	if err := h.userService.Remove(c.Request.Context(), actor, targetUID); err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("user deleted", "actor", actor.UID, "target", targetUID)

	c.JSON(http.StatusOK, gin.H{"detail": "user deleted"})
}
