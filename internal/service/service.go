package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/models"
	"github.com/kjstillabower/weather-lookup/internal/observability"
)

// WeatherService sits between the presenter and a WeatherSource so the
// provider can be swapped without touching HTTP code.
type WeatherService struct {
	source client.WeatherSource
}

// NewWeatherService returns a WeatherService delegating to source.
func NewWeatherService(source client.WeatherSource) *WeatherService {
	return &WeatherService{source: source}
}

// GetWeather returns the source's result unchanged. Errors keep the client
// sentinels in their chain.
func (s *WeatherService) GetWeather(ctx context.Context, coords models.Coordinates) (models.WeatherResult, error) {
	start := time.Now()
	observability.WeatherQueriesTotal.Inc()

	result, err := s.source.FetchCurrentConditions(ctx, coords)
	if err != nil {
		return models.WeatherResult{}, fmt.Errorf("fetch weather for %s: %w", coords.Path(), err)
	}

	if logger := observability.LoggerFromContext(ctx); logger != nil {
		logger.Debug("weather served",
			zap.Float64("latitude", coords.Latitude),
			zap.Float64("longitude", coords.Longitude),
			zap.Int64("time", coords.Time),
			zap.Duration("duration", time.Since(start)))
	}
	return result, nil
}
