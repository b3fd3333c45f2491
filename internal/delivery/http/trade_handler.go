package http

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/delivery/http/dto"
	"tradejournal/internal/domain"
	"tradejournal/internal/middleware"
	"tradejournal/internal/usecase"
)

// TradeHandler handles trade journal requests
type TradeHandler struct {
	journal   *usecase.JournalService
	priceFeed domain.PriceFeed
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(journal *usecase.JournalService, priceFeed domain.PriceFeed) *TradeHandler {
	return &TradeHandler{
		journal:   journal,
		priceFeed: priceFeed,
	}
}

// ListTrades returns the session user's trades with dashboard totals
// GET /api/trades
func (h *TradeHandler) ListTrades(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trades, err := h.journal.ListTrades(ctx, sess)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"trades":  trades,
		"summary": usecase.Summarize(trades),
	})
}

// CreateTrade records a new journal entry
// POST /api/trades
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trade, err := h.journal.CreateTrade(ctx, sess, req.ToInput())
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, trade)
}

// UpdateTrade corrects an existing entry, re-deriving profit and pips
// PUT /api/trades/:id
func (h *TradeHandler) UpdateTrade(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid trade id")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trade, err := h.journal.UpdateTrade(ctx, sess, id, req.ToInput())
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, trade)
}

// DeleteTrade removes an entry; deleting a missing id still succeeds
// DELETE /api/trades/:id
func (h *TradeHandler) DeleteTrade(c echo.Context) error {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return BadRequestResponse(c, "Invalid trade id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.journal.DeleteTrade(ctx, sess, id); err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]string{"message": "Trade deleted"})
}

// GetMarketPrice returns the current price for the entry-form prefill. An
// unavailable price is a null payload, not an error.
// GET /api/market/price?pair=XAUUSD
func (h *TradeHandler) GetMarketPrice(c echo.Context) error {
	pair := strings.ToUpper(c.QueryParam("pair"))
	if !domain.IsSupportedPair(pair) {
		return BadRequestResponse(c, "Unsupported pair")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 6*time.Second)
	defer cancel()

	price, ok := h.priceFeed.GetMarketPrice(ctx, pair)

	payload := map[string]interface{}{
		"pair":  pair,
		"price": nil,
	}
	if ok {
		payload["price"] = price
	}
	return SuccessResponse(c, payload)
}

// ListPairs returns the closed set of supported symbols
// GET /api/pairs
func (h *TradeHandler) ListPairs(c echo.Context) error {
	return SuccessResponse(c, map[string]interface{}{"pairs": domain.Pairs})
}
