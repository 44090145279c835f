package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/dto"
	"github.com/scrapehub/listings-api/internal/auth"
	"github.com/scrapehub/listings-api/internal/config"
)

// AuthHandler handles sign-in requests
type AuthHandler struct {
	logger *slog.Logger
	users  UserStore
	cfg    config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(logger *slog.Logger, users UserStore, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		cfg:    cfg,
	}
}

// SignIn handles POST /api/signin
// Verifies the credentials and issues a time-limited bearer token.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
			return
		}
		h.logger.Error("Failed to look up user for sign-in",
			slog.String("username", req.Username),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.cfg.SigningSecret, user.Username, h.cfg.TokenTTL)
	if err != nil {
		h.logger.Error("Failed to issue token",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	h.logger.Info("User signed in",
		slog.String("username", user.Username),
	)

	c.JSON(http.StatusOK, dto.SignInResponse{
		Token:    token,
		Username: user.Username,
	})
}
