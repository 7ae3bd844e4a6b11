package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/agrilearn-network/internal/cache"
	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
)

// WeatherProvider — внешний источник погодных данных.
type WeatherProvider interface {
	// Report возвращает сводку по городу; неизвестный город — ErrCityNotFound.
	Report(ctx context.Context, city string) (*models.WeatherReport, error)
	// ReportMany запрашивает несколько городов и закрывает канал по завершении.
	ReportMany(ctx context.Context, cities []string) <-chan models.WeatherResult
}

// Weather возвращает сводку по городу: сначала из кэша, затем у провайдера.
// Ошибки кэша не прерывают запрос и только логируются.
func (s *Service) Weather(ctx context.Context, city string) (*models.WeatherReport, error) {
	const op = "service.weather.Weather"

	if s.weather == nil {
		return nil, fmt.Errorf("%s: weather provider: %w", op, ErrUnavailable)
	}

	key := cache.Key(city)
	if key == "" {
		return nil, fmt.Errorf("%s: city is required: %w", op, ErrInvalidArgument)
	}

	lg := log.From(ctx)

	if s.cache != nil {
		report, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			lg.Warn("weather_cache_get_failed", slog.String("city", key), slog.String("err", err.Error()))
		case ok:
			return report, nil
		}
	}

	report, err := s.weather.Report(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.store(ctx, report)

	return report, nil
}

// StartWeatherRefresh периодически обновляет кэш по списку городов из конфига.
//
// Особенности:
//   - первый проход выполняется сразу, далее — по тикеру;
//   - ошибки по отдельным городам логируются и не прерывают цикл;
//   - останавливается по ctx.
func (s *Service) StartWeatherRefresh(ctx context.Context) error {
	const op = "service.weather.StartWeatherRefresh"

	if s.weather == nil || s.cache == nil {
		return fmt.Errorf("%s: weather provider and cache are required: %w", op, ErrUnavailable)
	}

	cities := make([]string, 0, len(s.weatherCfg.Cities))
	for _, c := range s.weatherCfg.Cities {
		if k := cache.Key(c); k != "" {
			cities = append(cities, k)
		}
	}

	if len(cities) == 0 {
		return fmt.Errorf("%s: no cities configured", op)
	}

	interval := s.weatherCfg.RefreshInterval
	if interval <= 0 {
		interval = time.Hour
	}

	lg := log.From(ctx)
	lg.Info("weather_refresh_start",
		slog.Int("cities", len(cities)),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.refreshOnce(ctx, cities)

	for {
		select {
		case <-ctx.Done():
			lg.Info("weather_refresh_stop")
			return nil
		case <-ticker.C:
			s.refreshOnce(ctx, cities)
		}
	}
}

// refreshOnce — один проход по всем городам; возвращает число обновлённых.
func (s *Service) refreshOnce(ctx context.Context, cities []string) int {
	lg := log.From(ctx)

	var ok, failed int
	for res := range s.weather.ReportMany(ctx, cities) {
		if res.Err != nil {
			failed++
			lg.Warn("weather_city_failed",
				slog.String("city", res.City),
				slog.String("err", res.Err.Error()),
			)
			continue
		}

		if s.store(ctx, res.Report) {
			ok++
		} else {
			failed++
		}
	}

	lg.Info("weather_refresh_done",
		slog.Int("updated", ok),
		slog.Int("failed", failed),
	)

	return ok
}

func (s *Service) store(ctx context.Context, report *models.WeatherReport) bool {
	if s.cache == nil || report == nil {
		return false
	}

	report.City = strings.ToLower(report.City)

	if err := s.cache.Set(ctx, report, s.weatherCfg.CacheTTL); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.From(ctx).Warn("weather_cache_set_failed",
				slog.String("city", report.City),
				slog.String("err", err.Error()),
			)
		}
		return false
	}

	return true
}
