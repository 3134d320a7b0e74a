package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
	"github.com/yanqian/ai-wardrobe/internal/infra/config"
	apperrors "github.com/yanqian/ai-wardrobe/pkg/errors"
)

func withRetries(attempts int) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: attempts, Exclude: []string{"/api/v1/items"}}
	}
}

func TestRouter_RetryDoesNotReplayWeatherFailure(t *testing.T) {
	outfits := &stubOutfits{
		recommendFn: func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
			return outfit.Response{}, apperrors.Wrap(apperrors.CodeWeather, "Could not get weather for Paris.", errors.New("timeout"))
		},
	}
	rec := performJSON(newRouterUnderTest(t, &stubItems{}, outfits, withRetries(3)), "/api/v1/outfits", `{"city":"Paris"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, 1, outfits.calls)
	require.Equal(t, "weather_error", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_RetryReplaysStorageFailure(t *testing.T) {
	outfits := &stubOutfits{}
	outfits.recommendFn = func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
		require.Equal(t, "Oslo", req.City)
		if outfits.calls < 3 {
			return outfit.Response{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load wardrobe", errors.New("conn reset"))
		}
		return outfit.Response{Outfits: []outfit.Outfit{}}, nil
	}
	rec := performJSON(newRouterUnderTest(t, &stubItems{}, outfits, withRetries(3)), "/api/v1/outfits", `{"city":"Oslo"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, outfits.calls)
	var resp outfit.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Outfits)
	require.Empty(t, resp.Outfits)
}

func TestRouter_RetryGivesUpAfterMaxAttempts(t *testing.T) {
	outfits := &stubOutfits{
		recommendFn: func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
			return outfit.Response{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load wardrobe", errors.New("db down"))
		},
	}
	rec := performJSON(newRouterUnderTest(t, &stubItems{}, outfits, withRetries(2)), "/api/v1/outfits", `{"city":"Oslo"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 2, outfits.calls)
	require.Equal(t, "storage_error", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_RateLimitPerClient(t *testing.T) {
	server := newRouterUnderTest(t, &stubItems{}, &stubOutfits{}, func(cfg *config.Config) {
		cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	})
	get := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, get("192.0.2.1:1000").Code)
	require.Equal(t, http.StatusOK, get("192.0.2.1:1001").Code)

	limited := get("192.0.2.1:1002")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, limited.Body.Bytes())["error"]["code"])
	require.NotEmpty(t, limited.Header().Get("Retry-After"))

	require.Equal(t, http.StatusOK, get("198.51.100.7:1000").Code)
}

func TestClientLimitersRefillAndSweep(t *testing.T) {
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	limiters := newClientLimiters(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 1}, time.Minute)
	limiters.now = func() time.Time { return now }

	require.True(t, limiters.reserve("a").ok)
	denied := limiters.reserve("a")
	require.False(t, denied.ok)
	require.Equal(t, time.Second, denied.wait)

	now = now.Add(time.Second)
	require.True(t, limiters.reserve("a").ok)

	now = now.Add(2 * time.Minute)
	require.True(t, limiters.reserve("b").ok)
	require.NotContains(t, limiters.clients, "a")
	require.Contains(t, limiters.clients, "b")
}

func TestRouter_CORSAllowList(t *testing.T) {
	server := newRouterUnderTest(t, &stubItems{}, &stubOutfits{}, func(cfg *config.Config) {
		cfg.HTTP.CORSOrigins = []string{"http://localhost:3000/"}
	})
	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/outfits", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)
		return rec
	}

	allowed := preflight("http://localhost:3000")
	require.Equal(t, http.StatusNoContent, allowed.Code)
	require.Equal(t, "http://localhost:3000", allowed.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", allowed.Header().Get("Vary"))
	require.Equal(t, "600", allowed.Header().Get("Access-Control-Max-Age"))

	other := preflight("https://evil.example")
	require.Equal(t, http.StatusNoContent, other.Code)
	require.Empty(t, other.Header().Get("Access-Control-Allow-Origin"))
}
