// Package openweather fetches current conditions from the OpenWeatherMap API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// ErrMissingAPIKey is returned when no API key was configured.
var ErrMissingAPIKey = errors.New("openweather api key not configured")

// Client fetches current weather by city name.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[outfit.WeatherReading]
}

// NewClient builds an API client. A zero timeout means 10s.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[outfit.WeatherReading](gobreaker.Settings{
			Name:        "openweather",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// an unknown city is a valid answer, not an upstream fault
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, outfit.ErrCityNotFound)
			},
		}),
	}
}

// Fetch retrieves the current reading for city in metric units.
func (c *Client) Fetch(ctx context.Context, city string) (outfit.WeatherReading, error) {
	if c.apiKey == "" {
		return outfit.WeatherReading{}, ErrMissingAPIKey
	}
	reading, err := c.breaker.Execute(func() (outfit.WeatherReading, error) {
		return c.fetch(ctx, city)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return outfit.WeatherReading{}, fmt.Errorf("weather api unavailable: %w", err)
	}
	return reading, err
}

func (c *Client) fetch(ctx context.Context, city string) (outfit.WeatherReading, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return outfit.WeatherReading{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return outfit.WeatherReading{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return outfit.WeatherReading{}, outfit.ErrCityNotFound
	}
	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return outfit.WeatherReading{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outfit.WeatherReading{}, fmt.Errorf("read weather response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return outfit.WeatherReading{}, fmt.Errorf("decode weather response: %w", err)
	}
	return normalize(raw, city)
}

type apiResponse struct {
	Name    string       `json:"name"`
	Main    apiMain      `json:"main"`
	Weather []apiWeather `json:"weather"`
}

type apiMain struct {
	Temp *float64 `json:"temp"`
}

type apiWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// normalize rejects readings without a temperature or condition.
func normalize(raw apiResponse, requested string) (outfit.WeatherReading, error) {
	if raw.Main.Temp == nil {
		return outfit.WeatherReading{}, errors.New("weather response missing temperature")
	}
	if len(raw.Weather) == 0 || strings.TrimSpace(raw.Weather[0].Main) == "" {
		return outfit.WeatherReading{}, errors.New("weather response missing condition")
	}
	city := strings.TrimSpace(raw.Name)
	if city == "" {
		city = strings.TrimSpace(requested)
	}
	return outfit.WeatherReading{
		Temperature: *raw.Main.Temp,
		Description: strings.ToLower(strings.TrimSpace(raw.Weather[0].Main)),
		City:        city,
	}, nil
}

var _ outfit.WeatherClient = (*Client)(nil)
