package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	priceCacheTTL   = time.Minute
	feedHTTPTimeout = 5 * time.Second
)

// MarketPriceService fetches current prices for the supported symbol set.
// Each symbol routes to the upstream that actually quotes it: Binance for
// crypto, FinancialModelingPrep for metals/oil/index, TwelveData for forex.
// Every failure mode degrades to an absent price; callers never see errors.
type MarketPriceService struct {
	httpClient *http.Client

	binanceURL    string
	fmpURL        string
	twelveDataURL string
	fmpKey        string
	twelveDataKey string

	mu    sync.Mutex
	cache map[string]cachedPrice
}

type cachedPrice struct {
	price     float64
	fetchedAt time.Time
}

// NewMarketPriceService creates a new MarketPriceService. Both upstream API
// keys accept the providers' "demo" key for development.
func NewMarketPriceService(fmpKey, twelveDataKey string) *MarketPriceService {
	return &MarketPriceService{
		httpClient: &http.Client{
			Timeout: feedHTTPTimeout,
		},
		binanceURL:    "https://api.binance.com",
		fmpURL:        "https://financialmodelingprep.com",
		twelveDataURL: "https://api.twelvedata.com",
		fmpKey:        fmpKey,
		twelveDataKey: twelveDataKey,
		cache:         make(map[string]cachedPrice),
	}
}

// GetMarketPrice returns the current price for a pair, memoized per symbol
// for one minute. ok is false when no upstream could supply a price.
func (s *MarketPriceService) GetMarketPrice(ctx context.Context, pair string) (float64, bool) {
	pair = strings.ToUpper(pair)

	s.mu.Lock()
	if entry, hit := s.cache[pair]; hit && time.Since(entry.fetchedAt) < priceCacheTTL {
		s.mu.Unlock()
		return entry.price, true
	}
	s.mu.Unlock()

	price, ok := s.fetch(ctx, pair)
	if !ok {
		return 0, false
	}

	s.mu.Lock()
	s.cache[pair] = cachedPrice{price: price, fetchedAt: time.Now()}
	s.mu.Unlock()

	return price, true
}

// SweepCache drops expired entries. Run periodically so the map does not
// retain symbols nobody asks for anymore.
func (s *MarketPriceService) SweepCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pair, entry := range s.cache {
		if time.Since(entry.fetchedAt) >= priceCacheTTL {
			delete(s.cache, pair)
		}
	}
}

func (s *MarketPriceService) fetch(ctx context.Context, pair string) (float64, bool) {
	switch pair {
	case "BTCUSD":
		return s.fetchBinance(ctx, "BTCUSDT")
	case "ETHUSD":
		return s.fetchBinance(ctx, "ETHUSDT")
	case "XAUUSD":
		return s.fetchFMP(ctx, "XAUUSD")
	case "USOIL":
		return s.fetchFMP(ctx, "WTIUSD")
	case "USTEC":
		return s.fetchFMP(ctx, "NDX")
	case "EURUSD":
		return s.fetchTwelveData(ctx, "EUR/USD")
	case "USDJPY":
		return s.fetchTwelveData(ctx, "USD/JPY")
	}
	return 0, false
}

func (s *MarketPriceService) fetchBinance(ctx context.Context, symbol string) (float64, bool) {
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", s.binanceURL, symbol)

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if !s.getJSON(ctx, url, &ticker) {
		return 0, false
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

func (s *MarketPriceService) fetchFMP(ctx context.Context, symbol string) (float64, bool) {
	url := fmt.Sprintf("%s/api/v3/quote/%s?apikey=%s", s.fmpURL, symbol, s.fmpKey)

	var quotes []struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	if !s.getJSON(ctx, url, &quotes) {
		return 0, false
	}

	if len(quotes) == 0 || quotes[0].Price <= 0 {
		return 0, false
	}
	return quotes[0].Price, true
}

func (s *MarketPriceService) fetchTwelveData(ctx context.Context, symbol string) (float64, bool) {
	url := fmt.Sprintf("%s/price?symbol=%s&apikey=%s",
		s.twelveDataURL, strings.ReplaceAll(symbol, "/", "%2F"), s.twelveDataKey)

	var quote struct {
		Price string `json:"price"`
	}
	if !s.getJSON(ctx, url, &quote) {
		return 0, false
	}

	price, err := strconv.ParseFloat(quote.Price, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

// getJSON performs a GET and decodes the body, absorbing every failure
func (s *MarketPriceService) getJSON(ctx context.Context, url string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[WARN] Price feed request failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Printf("[WARN] Price feed returned status %d", resp.StatusCode)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("[WARN] Price feed returned malformed body: %v", err)
		return false
	}
	return true
}
