package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPriceService(binance, fmp, twelve string) *MarketPriceService {
	s := NewMarketPriceService("demo", "demo")
	s.binanceURL = binance
	s.fmpURL = fmp
	s.twelveDataURL = twelve
	return s
}

func TestGetMarketPriceRouting(t *testing.T) {
	t.Parallel()

	binance := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"60123.45"}`))
	}))
	defer binance.Close()

	fmp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/quote/XAUUSD", r.URL.Path)
		w.Write([]byte(`[{"symbol":"XAUUSD","price":1912.5}]`))
	}))
	defer fmp.Close()

	twelve := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price", r.URL.Path)
		assert.Equal(t, "EUR/USD", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"price":"1.0850"}`))
	}))
	defer twelve.Close()

	ctx := context.Background()

	t.Run("crypto_via_binance", func(t *testing.T) {
		s := newTestPriceService(binance.URL, fmp.URL, twelve.URL)
		price, ok := s.GetMarketPrice(ctx, "BTCUSD")
		require.True(t, ok)
		assert.InDelta(t, 60123.45, price, 1e-9)
	})

	t.Run("gold_via_fmp", func(t *testing.T) {
		s := newTestPriceService(binance.URL, fmp.URL, twelve.URL)
		price, ok := s.GetMarketPrice(ctx, "XAUUSD")
		require.True(t, ok)
		assert.InDelta(t, 1912.5, price, 1e-9)
	})

	t.Run("forex_via_twelvedata", func(t *testing.T) {
		s := newTestPriceService(binance.URL, fmp.URL, twelve.URL)
		price, ok := s.GetMarketPrice(ctx, "eurusd")
		require.True(t, ok)
		assert.InDelta(t, 1.0850, price, 1e-9)
	})

	t.Run("unknown_pair_absent", func(t *testing.T) {
		s := newTestPriceService(binance.URL, fmp.URL, twelve.URL)
		_, ok := s.GetMarketPrice(ctx, "ABCXYZ")
		assert.False(t, ok)
	})
}

func TestGetMarketPriceMemoizes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	binance := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"symbol":"ETHUSDT","price":"3001.10"}`))
	}))
	defer binance.Close()

	s := newTestPriceService(binance.URL, "http://127.0.0.1:0", "http://127.0.0.1:0")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		price, ok := s.GetMarketPrice(ctx, "ETHUSD")
		require.True(t, ok)
		assert.InDelta(t, 3001.10, price, 1e-9)
	}

	assert.Equal(t, int64(1), calls.Load())
}

func TestGetMarketPriceAbsorbsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream_500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed_body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "nonpositive_price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"symbol":"BTCUSDT","price":"0"}`))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := newTestPriceService(srv.URL, srv.URL, srv.URL)
			_, ok := s.GetMarketPrice(context.Background(), "BTCUSD")
			assert.False(t, ok)
		})
	}
}

func TestGetMarketPriceConnectionRefused(t *testing.T) {
	t.Parallel()

	s := newTestPriceService("http://127.0.0.1:0", "http://127.0.0.1:0", "http://127.0.0.1:0")
	_, ok := s.GetMarketPrice(context.Background(), "BTCUSD")
	assert.False(t, ok)
}

func TestSweepCache(t *testing.T) {
	t.Parallel()

	binance := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"60000"}`))
	}))
	defer binance.Close()

	s := newTestPriceService(binance.URL, "http://127.0.0.1:0", "http://127.0.0.1:0")

	_, ok := s.GetMarketPrice(context.Background(), "BTCUSD")
	require.True(t, ok)

	s.mu.Lock()
	entry := s.cache["BTCUSD"]
	entry.fetchedAt = entry.fetchedAt.Add(-2 * priceCacheTTL)
	s.cache["BTCUSD"] = entry
	s.mu.Unlock()

	s.SweepCache()

	s.mu.Lock()
	_, present := s.cache["BTCUSD"]
	s.mu.Unlock()
	assert.False(t, present)
}
