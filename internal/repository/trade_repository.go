package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradejournal/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Insert stores a new trade. created_at is stamped here; any caller-supplied
// value is ignored.
func (r *TradeRepositoryImpl) Insert(ctx context.Context, trade *domain.Trade) error {
	query := `
		INSERT INTO trades (
			user_id, pair, direction, lot, open_price, close_price,
			take_profit, stop_loss, trade_date, trade_time, note,
			profit_usd, profit_local, pips, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id
	`

	trade.CreatedAt = time.Now().UTC()
	trade.UpdatedAt = nil

	err := r.db.QueryRow(ctx, query,
		trade.UserID,
		trade.Pair,
		trade.Direction,
		trade.Lot,
		trade.OpenPrice,
		trade.ClosePrice,
		trade.TakeProfit,
		trade.StopLoss,
		trade.TradeDate,
		trade.TradeTime,
		trade.Note,
		trade.ProfitUSD,
		trade.ProfitLocal,
		trade.Pips,
		trade.CreatedAt,
	).Scan(&trade.ID)

	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// GetByID retrieves a trade by id
func (r *TradeRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.Trade, error) {
	query := `
		SELECT t.id, t.user_id, u.username, t.pair, t.direction, t.lot,
		       t.open_price, t.close_price, t.take_profit, t.stop_loss,
		       t.trade_date, t.trade_time, COALESCE(t.note, ''),
		       t.profit_usd, t.profit_local, t.pips, t.created_at, t.updated_at
		FROM trades t
		JOIN users u ON t.user_id = u.id
		WHERE t.id = $1
	`

	trade, err := scanTrade(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return trade, nil
}

// ListByUser retrieves one owner's trades, newest-id-first
func (r *TradeRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	query := `
		SELECT t.id, t.user_id, u.username, t.pair, t.direction, t.lot,
		       t.open_price, t.close_price, t.take_profit, t.stop_loss,
		       t.trade_date, t.trade_time, COALESCE(t.note, ''),
		       t.profit_usd, t.profit_local, t.pips, t.created_at, t.updated_at
		FROM trades t
		JOIN users u ON t.user_id = u.id
		WHERE t.user_id = $1
		ORDER BY t.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// ListAll retrieves every trade across all users, newest-id-first
func (r *TradeRepositoryImpl) ListAll(ctx context.Context) ([]*domain.Trade, error) {
	query := `
		SELECT t.id, t.user_id, u.username, t.pair, t.direction, t.lot,
		       t.open_price, t.close_price, t.take_profit, t.stop_loss,
		       t.trade_date, t.trade_time, COALESCE(t.note, ''),
		       t.profit_usd, t.profit_local, t.pips, t.created_at, t.updated_at
		FROM trades t
		JOIN users u ON t.user_id = u.id
		ORDER BY t.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// Update rewrites a trade's fields. updated_at is stamped here.
func (r *TradeRepositoryImpl) Update(ctx context.Context, trade *domain.Trade) error {
	query := `
		UPDATE trades SET
			pair = $1, direction = $2, lot = $3, open_price = $4,
			close_price = $5, take_profit = $6, stop_loss = $7,
			trade_date = $8, trade_time = $9, note = $10,
			profit_usd = $11, profit_local = $12, pips = $13, updated_at = $14
		WHERE id = $15
	`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query,
		trade.Pair,
		trade.Direction,
		trade.Lot,
		trade.OpenPrice,
		trade.ClosePrice,
		trade.TakeProfit,
		trade.StopLoss,
		trade.TradeDate,
		trade.TradeTime,
		trade.Note,
		trade.ProfitUSD,
		trade.ProfitLocal,
		trade.Pips,
		now,
		trade.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTradeNotFound
	}
	trade.UpdatedAt = &now
	return nil
}

// Delete removes a trade by id. Missing ids are a no-op success.
func (r *TradeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM trades WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

// Count returns the total number of trades
func (r *TradeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trades`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	trade := &domain.Trade{}
	err := row.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Username,
		&trade.Pair,
		&trade.Direction,
		&trade.Lot,
		&trade.OpenPrice,
		&trade.ClosePrice,
		&trade.TakeProfit,
		&trade.StopLoss,
		&trade.TradeDate,
		&trade.TradeTime,
		&trade.Note,
		&trade.ProfitUSD,
		&trade.ProfitLocal,
		&trade.Pips,
		&trade.CreatedAt,
		&trade.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return trade, nil
}

func collectTrades(rows pgx.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}
	return trades, nil
}
