package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/service"
	"tradejournal/internal/usecase"
)

// resetPassword is the fixed credential applied by the admin reset action.
// The user is expected to change it on first login.
const resetPassword = "password123"

// AdminHandler handles account management and the store flag
type AdminHandler struct {
	userRepo    domain.UserRepository
	tradeRepo   domain.TradeRepository
	authService *service.AuthService
	journal     *usecase.JournalService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userRepo domain.UserRepository,
	tradeRepo domain.TradeRepository,
	authService *service.AuthService,
	journal *usecase.JournalService,
) *AdminHandler {
	return &AdminHandler{
		userRepo:    userRepo,
		tradeRepo:   tradeRepo,
		authService: authService,
		journal:     journal,
	}
}

// ListUsers returns every account, newest first
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.userRepo.GetAll(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	out := make([]*dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserOutput(u))
	}

	return SuccessResponse(c, map[string]interface{}{
		"users": out,
		"count": len(out),
	})
}

// CreateUser provisions a new account
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Username == "" || req.Password == "" {
		return BadRequestResponse(c, "Username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.CreateUser(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, dto.NewUserOutput(user))
}

// SetUserStatus activates or deactivates an account
// PUT /api/admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	var req dto.SetUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Status != domain.StatusActive && req.Status != domain.StatusInactive {
		return BadRequestResponse(c, "Status must be 'active' or 'inactive'")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"message": "User status updated"})
}

// ResetUserPassword resets an account credential to the fixed default
// POST /api/admin/users/:id/password/reset
func (h *AdminHandler) ResetUserPassword(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	if err := h.authService.ChangePassword(ctx, user, resetPassword); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{
		"message": "Password reset to the default. Ask the user to change it after login",
	})
}

// ListAllTrades returns every user's trades joined with usernames
// GET /api/admin/trades
func (h *AdminHandler) ListAllTrades(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "Session not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trades, err := h.journal.ListAllTrades(ctx, sess)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"trades":  trades,
		"summary": usecase.Summarize(trades),
	})
}

// GetStoreStatus returns the store flag
// GET /api/admin/store
func (h *AdminHandler) GetStoreStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status, err := h.journal.StoreStatus(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"store_status": status})
}

// SetStoreStatus flips the store flag
// PUT /api/admin/store
func (h *AdminHandler) SetStoreStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Status != domain.StoreOpen && req.Status != domain.StoreClosed {
		return BadRequestResponse(c, "Status must be 'open' or 'closed'")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.journal.SetStoreStatus(ctx, req.Status); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"store_status": req.Status})
}

// GetStats returns the admin dashboard counters
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	totalTrades, err := h.tradeRepo.Count(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	totalUsers, err := h.userRepo.Count(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]int64{
		"total_trades": totalTrades,
		"total_users":  totalUsers,
	})
}
