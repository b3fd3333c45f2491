package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user. Returns ErrDuplicateUsername when the
	// username is already taken; the existing record is left untouched.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetAll retrieves all users, newest first
	GetAll(ctx context.Context) ([]*User, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)

	// UpdateStatus flips an account between active and inactive
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// UpdatePassword replaces the stored credential hash
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	// Insert stores a new trade and stamps created_at server-side.
	// The assigned id is written back into the trade.
	Insert(ctx context.Context, trade *Trade) error

	// GetByID retrieves a trade by id. Returns ErrTradeNotFound when absent.
	GetByID(ctx context.Context, id int64) (*Trade, error)

	// ListByUser retrieves one owner's trades joined with the owner's
	// username, newest-id-first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Trade, error)

	// ListAll retrieves every trade across all users joined with owner
	// usernames, newest-id-first.
	ListAll(ctx context.Context) ([]*Trade, error)

	// Update rewrites a trade's fields and stamps updated_at server-side
	Update(ctx context.Context, trade *Trade) error

	// Delete removes a trade by id. Deleting a nonexistent id is a no-op.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of trades
	Count(ctx context.Context) (int64, error)
}

// SettingsRepository defines the interface for key/value settings
type SettingsRepository interface {
	// Get retrieves a setting by key; ok is false when the key is absent
	Get(ctx context.Context, key string) (string, bool, error)

	// Set upserts a setting
	Set(ctx context.Context, key, value string) error
}

// PriceFeed fetches the current market price for a symbol. Absence of a
// price (network failure, unknown symbol, upstream outage) is the ok=false
// return, never an error: callers treat missing data as normal control flow.
type PriceFeed interface {
	GetMarketPrice(ctx context.Context, pair string) (float64, bool)
}

// RateFeed fetches the USD to local currency conversion rate. Same absence
// contract as PriceFeed.
type RateFeed interface {
	GetUSDToLocal(ctx context.Context) (float64, bool)
}
