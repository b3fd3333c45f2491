package dto

import "tradejournal/internal/usecase"

// TradeRequest represents the trade create/update payload. Profit and pip
// fields are intentionally absent: the server always derives them.
type TradeRequest struct {
	Pair       string   `json:"pair"`
	Direction  string   `json:"direction"`
	Lot        float64  `json:"lot"`
	OpenPrice  float64  `json:"open_price"`
	ClosePrice float64  `json:"close_price"`
	TakeProfit *float64 `json:"take_profit,omitempty"`
	StopLoss   *float64 `json:"stop_loss,omitempty"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Note       string   `json:"note,omitempty"`
}

// ToInput converts the payload into the usecase input shape
func (r *TradeRequest) ToInput() usecase.TradeInput {
	return usecase.TradeInput{
		Pair:       r.Pair,
		Direction:  r.Direction,
		Lot:        r.Lot,
		OpenPrice:  r.OpenPrice,
		ClosePrice: r.ClosePrice,
		TakeProfit: r.TakeProfit,
		StopLoss:   r.StopLoss,
		TradeDate:  r.Date,
		TradeTime:  r.Time,
		Note:       r.Note,
	}
}
