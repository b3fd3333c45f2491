// Package usecase wires validation, authorization and derivation around the
// repositories. Handlers never touch trade arithmetic or the store flag
// directly; everything funnels through the JournalService.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"tradejournal/internal/domain"
	"tradejournal/internal/economics"
)

// JournalService orchestrates trade bookkeeping
type JournalService struct {
	tradeRepo    domain.TradeRepository
	settingsRepo domain.SettingsRepository
	rateFeed     domain.RateFeed
}

// NewJournalService creates a new JournalService
func NewJournalService(
	tradeRepo domain.TradeRepository,
	settingsRepo domain.SettingsRepository,
	rateFeed domain.RateFeed,
) *JournalService {
	return &JournalService{
		tradeRepo:    tradeRepo,
		settingsRepo: settingsRepo,
		rateFeed:     rateFeed,
	}
}

// TradeInput carries the user-supplied fields of a trade entry. Profit and
// pip values are never accepted from the caller.
type TradeInput struct {
	Pair       string
	Direction  string
	Lot        float64
	OpenPrice  float64
	ClosePrice float64
	TakeProfit *float64
	StopLoss   *float64
	TradeDate  string
	TradeTime  string
	Note       string
}

// StoreStatus returns the current store flag, defaulting to open when the
// setting has never been written.
func (s *JournalService) StoreStatus(ctx context.Context) (string, error) {
	value, found, err := s.settingsRepo.Get(ctx, domain.SettingStoreStatus)
	if err != nil {
		return "", err
	}
	if !found {
		return domain.StoreOpen, nil
	}
	return value, nil
}

// SetStoreStatus updates the store flag
func (s *JournalService) SetStoreStatus(ctx context.Context, value string) error {
	if value != domain.StoreOpen && value != domain.StoreClosed {
		return fmt.Errorf("invalid store status %q", value)
	}
	return s.settingsRepo.Set(ctx, domain.SettingStoreStatus, value)
}

// CreateTrade validates the input, checks the store gate, derives the
// economics and persists the entry. The gate check sits immediately before
// the insert so a flag flip between page render and submit still takes
// effect; admins are never gated.
func (s *JournalService) CreateTrade(ctx context.Context, sess *domain.Session, input TradeInput) (*domain.Trade, error) {
	trade := &domain.Trade{
		UserID:     sess.UserID,
		Pair:       input.Pair,
		Direction:  input.Direction,
		Lot:        input.Lot,
		OpenPrice:  input.OpenPrice,
		ClosePrice: input.ClosePrice,
		TakeProfit: input.TakeProfit,
		StopLoss:   input.StopLoss,
		TradeDate:  input.TradeDate,
		TradeTime:  input.TradeTime,
		Note:       input.Note,
	}

	if err := trade.Validate(); err != nil {
		return nil, err
	}

	if !sess.IsAdmin() {
		status, err := s.StoreStatus(ctx)
		if err != nil {
			return nil, err
		}
		if status == domain.StoreClosed {
			return nil, domain.ErrStoreClosed
		}
	}

	s.derive(ctx, trade)

	if err := s.tradeRepo.Insert(ctx, trade); err != nil {
		return nil, err
	}

	trade.Username = sess.Username
	return trade, nil
}

// UpdateTrade rewrites a trade owned by the session user (admins may correct
// anyone's). Economics are always re-derived from the submitted fields, never
// copied from the stored row.
func (s *JournalService) UpdateTrade(ctx context.Context, sess *domain.Session, id int64, input TradeInput) (*domain.Trade, error) {
	existing, err := s.tradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserID != sess.UserID && !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	existing.Pair = input.Pair
	existing.Direction = input.Direction
	existing.Lot = input.Lot
	existing.OpenPrice = input.OpenPrice
	existing.ClosePrice = input.ClosePrice
	existing.TakeProfit = input.TakeProfit
	existing.StopLoss = input.StopLoss
	existing.TradeDate = input.TradeDate
	existing.TradeTime = input.TradeTime
	existing.Note = input.Note

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	s.derive(ctx, existing)

	if err := s.tradeRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteTrade removes a trade. Missing ids succeed silently; trades owned by
// someone else require the admin role.
func (s *JournalService) DeleteTrade(ctx context.Context, sess *domain.Session, id int64) error {
	existing, err := s.tradeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			return nil
		}
		return err
	}

	if existing.UserID != sess.UserID && !sess.IsAdmin() {
		return domain.ErrForbidden
	}

	return s.tradeRepo.Delete(ctx, id)
}

// ListTrades returns the session user's trades, newest-id-first
func (s *JournalService) ListTrades(ctx context.Context, sess *domain.Session) ([]*domain.Trade, error) {
	return s.tradeRepo.ListByUser(ctx, sess.UserID)
}

// ListAllTrades returns every user's trades joined with usernames. Admin only.
func (s *JournalService) ListAllTrades(ctx context.Context, sess *domain.Session) ([]*domain.Trade, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.tradeRepo.ListAll(ctx)
}

// Summary aggregates a trade list the way the dashboard header shows it
type Summary struct {
	TotalTrades    int     `json:"total_trades"`
	TotalProfitUSD float64 `json:"total_profit_usd"`
}

// Summarize computes the dashboard totals for a set of trades
func Summarize(trades []*domain.Trade) Summary {
	sum := Summary{TotalTrades: len(trades)}
	for _, t := range trades {
		sum.TotalProfitUSD += t.ProfitUSD
	}
	return sum
}

// derive recomputes the stored profit and pip fields from the raw trade
// fields. A missing FX rate zeroes the local profit.
func (s *JournalService) derive(ctx context.Context, trade *domain.Trade) {
	trade.Pips = economics.PipDistance(trade.Pair, trade.OpenPrice, trade.ClosePrice)
	trade.ProfitUSD = economics.ProfitUSD(trade.Pair, trade.OpenPrice, trade.ClosePrice, trade.Lot, trade.Direction)

	rate, ok := s.rateFeed.GetUSDToLocal(ctx)
	trade.ProfitLocal = economics.ConvertLocal(trade.ProfitUSD, rate, ok)
}
