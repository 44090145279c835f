package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/dto"
	"github.com/scrapehub/listings-api/internal/api/model"
)

// bcryptCost matches the cost the original account records were hashed with.
const bcryptCost = 10

// UserHandler handles account management requests
type UserHandler struct {
	logger *slog.Logger
	users  UserStore
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(logger *slog.Logger, users UserStore) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// CreateUser handles POST /api/create-user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Username and password are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.logger.Error("Failed to hash password",
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	user := model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Tasks:        req.Tasks,
	}

	if err := h.users.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Username already exists"})
			return
		}
		h.logger.Error("Failed to create user",
			slog.String("username", req.Username),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created successfully"})
}

// EditUser handles PUT /api/edit-user/:id
// Only the tasks field is mutable.
func (h *UserHandler) EditUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.users.UpdateUserTasks(c.Request.Context(), id, req.Tasks); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		h.logger.Error("Failed to update user",
			slog.Int64("user_id", id),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User updated successfully"})
}

// DeleteUser handles DELETE /api/delete-user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		h.logger.Error("Failed to delete user",
			slog.Int64("user_id", id),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// userID parses the :id path param. A non-numeric id can never match a row,
// so it reports the same 404 a missing user would.
func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		return 0, false
	}
	return id, true
}
