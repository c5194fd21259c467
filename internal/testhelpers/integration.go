//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/service"
)

// IntegrationTestConfig holds configuration for integration tests against the live provider.
type IntegrationTestConfig struct {
	APIKey string
	APIURL string
}

// GetIntegrationConfig loads integration test configuration from environment.
// Skips test if WEATHER_API_KEY is not set.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = client.DefaultBaseURL
	}

	return IntegrationTestConfig{
		APIKey: apiKey,
		APIURL: apiURL,
	}
}

// SetupIntegrationService creates a WeatherService backed by the live provider.
func SetupIntegrationService(t *testing.T, cfg IntegrationTestConfig) *service.WeatherService {
	t.Helper()
	weatherClient, err := client.NewDarkSkyClient(cfg.APIKey, cfg.APIURL, "", client.DefaultTimeout)
	if err != nil {
		t.Fatalf("NewDarkSkyClient() error = %v", err)
	}
	return service.NewWeatherService(weatherClient)
}
