package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Snapshot is the structured weather state for a city.
type Snapshot struct {
	City        string
	Temperature float64 // Celsius
	FeelsLike   float64
	Humidity    int // percent
	Description string
	WindSpeed   float64 // m/s
}

// Config holds OpenWeather client settings.
type Config struct {
	APIKey    string
	BaseURL   string // default https://api.openweathermap.org
	TimeoutMs int
}

// Client fetches current weather and reverse-geocodes coordinates using
// the OpenWeather API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a weather client. A zero timeout defaults to 10s.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openweathermap.org"
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 10000
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
	}
}

type currentWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns the current weather for a city.
func (c *Client) Current(ctx context.Context, city string) (*Snapshot, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")

	var resp currentWeatherResponse
	if err := c.getJSON(ctx, "/data/2.5/weather", q, &resp); err != nil {
		return nil, fmt.Errorf("fetching weather for %q: %w", city, err)
	}

	snap := &Snapshot{
		City:        resp.Name,
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		snap.Description = resp.Weather[0].Description
	}
	return snap, nil
}

type reverseGeocodeResponse []struct {
	Name string `json:"name"`
}

// CityFor reverse-geocodes coordinates to a city name.
func (c *Client) CityFor(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("limit", "1")
	q.Set("appid", c.cfg.APIKey)

	var resp reverseGeocodeResponse
	if err := c.getJSON(ctx, "/geo/1.0/reverse", q, &resp); err != nil {
		return "", fmt.Errorf("reverse geocoding %.4f,%.4f: %w", lat, lng, err)
	}
	if len(resp) == 0 || resp[0].Name == "" {
		return "", fmt.Errorf("no city found for %.4f,%.4f", lat, lng)
	}
	return resp[0].Name, nil
}

// Advise fetches the weather for city and composes the advice message.
func (c *Client) Advise(ctx context.Context, city string) (string, error) {
	snap, err := c.Current(ctx, city)
	if err != nil {
		return "", err
	}
	return Report(snap), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
