// weather — клиент OpenWeather: геокодинг города, текущая погода и прогноз.
// Реализует service.WeatherProvider.
//
// Параллелизм ReportMany ограничен семафором maxConc. HTTP-клиент
// настраивается извне (таймауты, прокси и т.д.).
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
	"github.com/pribylovaa/agrilearn-network/internal/service"
)

type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	maxConc int
	now     func() time.Time
}

// New создаёт клиент. baseURL — корень API (https://api.openweathermap.org).
func New(client *http.Client, baseURL, apiKey string, maxConcurrent int) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		maxConc: maxConcurrent,
		now:     time.Now,
	}
}

// Report собирает сводку по городу: координаты, текущая погода, прогноз.
// Неизвестный город — service.ErrCityNotFound.
func (c *Client) Report(ctx context.Context, city string) (*models.WeatherReport, error) {
	const op = "weather.Report"

	coords, err := c.geocode(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current, err := c.current(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	forecast, err := c.forecast(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.WeatherReport{
		City:        city,
		Coordinates: coords,
		Current:     current,
		Forecast:    forecast,
		FetchedAt:   c.now().UTC(),
	}, nil
}

// ReportMany запрашивает сводки по нескольким городам конкурентно и отдаёт
// результаты в канал. Канал закрывается после обработки всех городов.
func (c *Client) ReportMany(ctx context.Context, cities []string) <-chan models.WeatherResult {
	output := make(chan models.WeatherResult)

	go func() {
		defer close(output)

		sem := make(chan struct{}, c.maxConc)

	loop:
		for _, city := range cities {
			city := city
			select {
			case <-ctx.Done():
				break loop
			case sem <- struct{}{}:
			}

			go func() {
				defer func() { <-sem }()

				report, err := c.Report(ctx, city)

				output <- models.WeatherResult{City: city, Report: report, Err: err}
			}()
		}

		// Дожидаемся запущенных запросов до закрытия канала.
		for i := 0; i < cap(sem); i++ {
			sem <- struct{}{}
		}
	}()

	return output
}

type geoEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func (c *Client) geocode(ctx context.Context, city string) (models.Coordinates, error) {
	const op = "weather.geocode"

	var entries []geoEntry
	q := url.Values{"q": {city}, "limit": {"1"}}

	if err := c.get(ctx, "/geo/1.0/direct", q, &entries); err != nil {
		return models.Coordinates{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(entries) == 0 {
		return models.Coordinates{}, fmt.Errorf("%s: %q: %w", op, city, service.ErrCityNotFound)
	}

	return models.Coordinates{Lat: entries[0].Lat, Lon: entries[0].Lon}, nil
}

type condition struct {
	Description string `json:"description"`
}

type currentResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []condition `json:"weather"`
}

func (c *Client) current(ctx context.Context, coords models.Coordinates) (models.CurrentWeather, error) {
	const op = "weather.current"

	var resp currentResponse
	if err := c.get(ctx, "/data/2.5/weather", coordQuery(coords), &resp); err != nil {
		return models.CurrentWeather{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.CurrentWeather{
		TempC:       resp.Main.Temp,
		FeelsLikeC:  resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		Description: describe(resp.Weather),
		ObservedAt:  time.Unix(resp.Dt, 0).UTC(),
	}, nil
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []condition `json:"weather"`
		Pop     float64     `json:"pop"`
	} `json:"list"`
}

func (c *Client) forecast(ctx context.Context, coords models.Coordinates) ([]models.ForecastEntry, error) {
	const op = "weather.forecast"

	var resp forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", coordQuery(coords), &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.ForecastEntry, 0, len(resp.List))
	for _, e := range resp.List {
		out = append(out, models.ForecastEntry{
			Time:                     time.Unix(e.Dt, 0).UTC(),
			TempC:                    e.Main.Temp,
			Humidity:                 e.Main.Humidity,
			Description:              describe(e.Weather),
			PrecipitationProbability: e.Pop,
		})
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("new_request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.From(ctx).Warn("weather_http_error",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return service.ErrCityNotFound
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func coordQuery(c models.Coordinates) url.Values {
	return url.Values{
		"lat":   {strconv.FormatFloat(c.Lat, 'f', 4, 64)},
		"lon":   {strconv.FormatFloat(c.Lon, 'f', 4, 64)},
		"units": {"metric"},
	}
}

func describe(cs []condition) string {
	if len(cs) == 0 {
		return ""
	}

	return cs[0].Description
}

var _ service.WeatherProvider = (*Client)(nil)
