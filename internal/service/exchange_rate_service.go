package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

const rateCacheTTL = time.Hour

// ExchangeRateService fetches the USD to IDR conversion rate from
// exchangerate.host. The rate moves slowly, so one fetch per hour is
// plenty; failures fall back to whatever absence handling the caller
// applies, never an error.
type ExchangeRateService struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// NewExchangeRateService creates a new ExchangeRateService
func NewExchangeRateService() *ExchangeRateService {
	return &ExchangeRateService{
		httpClient: &http.Client{
			Timeout: feedHTTPTimeout,
		},
		baseURL: "https://api.exchangerate.host",
	}
}

// GetUSDToLocal returns the cached USD→IDR rate, refreshing it when older
// than an hour. ok is false when no rate has ever been fetched successfully
// within the TTL.
func (s *ExchangeRateService) GetUSDToLocal(ctx context.Context) (float64, bool) {
	s.mu.Lock()
	if s.rate > 0 && time.Since(s.fetchedAt) < rateCacheTTL {
		rate := s.rate
		s.mu.Unlock()
		return rate, true
	}
	s.mu.Unlock()

	rate, ok := s.fetch(ctx)
	if !ok {
		return 0, false
	}

	s.mu.Lock()
	s.rate = rate
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return rate, true
}

// Refresh forces a fetch, updating the cache on success. Wired to an hourly
// cron job so interactive requests rarely pay the upstream round trip.
func (s *ExchangeRateService) Refresh(ctx context.Context) {
	rate, ok := s.fetch(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	s.rate = rate
	s.fetchedAt = time.Now()
	s.mu.Unlock()
}

func (s *ExchangeRateService) fetch(ctx context.Context) (float64, bool) {
	url := fmt.Sprintf("%s/latest?base=USD&symbols=IDR", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[WARN] Rate feed request failed: %v", err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Printf("[WARN] Rate feed returned status %d", resp.StatusCode)
		return 0, false
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[WARN] Rate feed returned malformed body: %v", err)
		return 0, false
	}

	rate, ok := payload.Rates["IDR"]
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}
