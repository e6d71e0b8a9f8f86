package sysinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultWeatherURL is the OpenWeatherMap current-conditions endpoint.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherQuery holds the request parameters taken from the config.
type WeatherQuery struct {
	Location string
	Units    string
	Lang     string
	APIKey   string
}

// Conditions is the subset of the current-weather response the greeter shows.
type Conditions struct {
	Icon string
	Main string
	Temp float64
}

// WeatherFetcher retrieves current conditions.
type WeatherFetcher interface {
	Current(ctx context.Context, q WeatherQuery) (*Conditions, error)
}

// OpenWeatherMap is a WeatherFetcher backed by the OpenWeatherMap HTTP API.
type OpenWeatherMap struct {
	BaseURL string
	Client  *http.Client
	Log     zerolog.Logger
}

// NewOpenWeatherMap returns a client for the public endpoint with the given timeout.
func NewOpenWeatherMap(timeout time.Duration, log zerolog.Logger) *OpenWeatherMap {
	return &OpenWeatherMap{
		BaseURL: DefaultWeatherURL,
		Client:  &http.Client{Timeout: timeout},
		Log:     log,
	}
}

type owmResponse struct {
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Message string `json:"message"`
}

// Current implements WeatherFetcher.
func (c *OpenWeatherMap) Current(ctx context.Context, q WeatherQuery) (*Conditions, error) {
	params := url.Values{}
	params.Set("q", q.Location)
	params.Set("units", q.Units)
	params.Set("lang", q.Lang)
	params.Set("appid", q.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	c.Log.Debug().Int("status", resp.StatusCode).Str("location", q.Location).Msg("weather response")

	var payload owmResponse
	if err := json.Unmarshal(body, &payload); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := payload.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("could not fetch weather: %d %s", resp.StatusCode, msg)
	}
	if len(payload.Weather) == 0 {
		return nil, errors.New("could not fetch weather: response has no conditions")
	}

	return &Conditions{
		Icon: payload.Weather[0].Icon,
		Main: payload.Weather[0].Main,
		Temp: payload.Main.Temp,
	}, nil
}

var weatherIcons = map[string]string{
	"01d": "☀️",
	"01n": "🌙",
	"02d": "⛅️",
	"02n": "🌙",
	"03d": "☁️",
	"03n": "☁️",
	"04d": "☁️",
	"04n": "☁️",
	"09d": "🌧️",
	"09n": "🌧️",
	"10d": "🌧️",
	"10n": "🌧️",
	"11d": "⛈️",
	"11n": "⛈️",
	"13d": "🌨️",
	"13n": "🌨️",
	"40d": "🌫️",
	"40n": "🌫️",
	"50d": "🌫️",
	"50n": "🌫️",
}

// UnknownWeatherIcon is shown for icon codes missing from the table.
const UnknownWeatherIcon = "❓"

// WeatherIcon maps an OpenWeatherMap icon code to an emoji.
func WeatherIcon(code string) string {
	if icon, ok := weatherIcons[code]; ok {
		return icon
	}
	return UnknownWeatherIcon
}

// FormatWeather renders "{icon} {condition} {temp}°{unit}". The temperature is
// truncated toward zero.
func FormatWeather(c *Conditions, units string) string {
	deg := "C"
	if units == "imperial" {
		deg = "F"
	}
	temp := int(math.Trunc(c.Temp))
	return fmt.Sprintf("%s %s %d°%s", WeatherIcon(c.Icon), c.Main, temp, deg)
}
