package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trade represents one closed journal entry
type Trade struct {
	ID          int64      `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Username    string     `json:"username,omitempty"` // joined owner name, list queries only
	Pair        string     `json:"pair"`
	Direction   string     `json:"direction"`
	Lot         float64    `json:"lot"`
	OpenPrice   float64    `json:"open_price"`
	ClosePrice  float64    `json:"close_price"`
	TakeProfit  *float64   `json:"take_profit,omitempty"`
	StopLoss    *float64   `json:"stop_loss,omitempty"`
	TradeDate   string     `json:"date"`
	TradeTime   string     `json:"time"`
	Note        string     `json:"note,omitempty"`
	ProfitUSD   float64    `json:"profit_usd"`
	ProfitLocal float64    `json:"profit_local"`
	Pips        float64    `json:"pips"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TradeDirection constants
const (
	DirectionBuy  = "BUY"
	DirectionSell = "SELL"
)

// Pairs is the closed set of supported trading symbols.
var Pairs = []string{"XAUUSD", "BTCUSD", "ETHUSD", "USTEC", "USOIL", "EURUSD", "USDJPY"}

// IsSupportedPair reports whether pair is in the supported symbol set.
func IsSupportedPair(pair string) bool {
	for _, p := range Pairs {
		if p == pair {
			return true
		}
	}
	return false
}

// Validate checks the user-supplied trade fields. Derived fields (profit,
// pips) are not validated here; they are always recomputed server-side.
func (t *Trade) Validate() error {
	if !IsSupportedPair(t.Pair) {
		return ErrInvalidTradeInput
	}
	if t.Direction != DirectionBuy && t.Direction != DirectionSell {
		return ErrInvalidTradeInput
	}
	if t.Lot <= 0 || t.OpenPrice <= 0 || t.ClosePrice <= 0 {
		return ErrInvalidTradeInput
	}
	return nil
}
