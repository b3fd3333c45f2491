// Package economics holds the pure trade arithmetic: pip distance, USD
// profit and local-currency conversion. No I/O, fully deterministic.
package economics

import (
	"math"

	"tradejournal/internal/domain"
)

// ContractSize maps each supported pair to the fixed multiplier that
// converts one unit of price movement per one lot into USD.
var ContractSize = map[string]float64{
	"XAUUSD": 100,
	"BTCUSD": 1,
	"ETHUSD": 1,
	"USTEC":  20,
	"USOIL":  1000,
	"EURUSD": 100000,
	"USDJPY": 100000,
}

// pipScale is the price-unit size of one pip. Pairs missing from the table
// (crypto, index, anything unrecognized) count raw price delta as pips.
var pipScale = map[string]float64{
	"XAUUSD": 0.01,
	"USOIL":  0.01,
	"USDJPY": 0.01,
	"EURUSD": 0.0001,
}

// PipDistance converts the absolute open/close delta into pips by dividing
// by the pair's pip scale. Dividing (not multiplying) is the chosen
// convention: a 0.0050 EURUSD move is 50 pips.
func PipDistance(pair string, openPrice, closePrice float64) float64 {
	delta := math.Abs(closePrice - openPrice)
	if scale, ok := pipScale[pair]; ok {
		return delta / scale
	}
	return delta
}

// ProfitUSD computes the signed USD profit of a closed trade. BUY profits
// when price rises, SELL when it falls; the two are exact negations for
// identical prices.
func ProfitUSD(pair string, openPrice, closePrice, lot float64, direction string) float64 {
	cs, ok := ContractSize[pair]
	if !ok {
		cs = 1
	}
	if direction == domain.DirectionSell {
		return (openPrice - closePrice) * lot * cs
	}
	return (closePrice - openPrice) * lot * cs
}

// ConvertLocal converts a USD profit into the local currency. When no rate
// is available the result is zero rather than a stale or guessed figure.
func ConvertLocal(profitUSD float64, rate float64, ok bool) float64 {
	if !ok || rate <= 0 {
		return 0
	}
	return profitUSD * rate
}
