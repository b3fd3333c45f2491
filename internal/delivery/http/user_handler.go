package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/service"
)

// UserHandler handles requests about the authenticated user
type UserHandler struct {
	userRepo    domain.UserRepository
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo domain.UserRepository, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userRepo:    userRepo,
		authService: authService,
	}
}

// GetMe returns current user details
// GET /api/user/me
func (h *UserHandler) GetMe(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewUserOutput(user))
}

// ChangePassword lets a user replace their own credential
// POST /api/user/password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.NewPassword == "" {
		return BadRequestResponse(c, "New password is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	if !service.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return UnauthorizedResponse(c, "Current password is incorrect")
	}

	if err := h.authService.ChangePassword(ctx, user, req.NewPassword); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"message": "Password updated"})
}
