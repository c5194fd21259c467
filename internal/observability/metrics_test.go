package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// TestMetrics_Usable verifies that label dimensions match usage in the client, http and service packages.
func TestMetrics_Usable(t *testing.T) {
	// Route uses the path template to avoid cardinality (/{lat}/{lon}/{time}, not /45/-122/...)
	HTTPRequestsTotal.WithLabelValues("GET", "/{lat}/{lon}/{time}", "2xx").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/{lat}/{lon}/{time}").Observe(0.01)
	WeatherAPICallsTotal.WithLabelValues("success").Inc()
	WeatherAPICallsTotal.WithLabelValues("error").Inc()
	WeatherAPIDuration.WithLabelValues("success").Observe(0.1)
	WeatherAPIErrorsTotal.WithLabelValues("transport").Inc()
	WeatherQueriesTotal.Inc()
	ValidationRejectionsTotal.WithLabelValues("form", "latitude").Inc()
}

// TestMetricsHandler_ServesPrometheusFormat verifies that MetricsHandler serves
// Prometheus text exposition format.
func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/", "2xx").Inc()

	handler := MetricsHandler()
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MetricsHandler status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "httpRequestsTotal") {
		t.Error("MetricsHandler response should contain metric output")
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if LoggerFromContext(ctx) != nil {
		t.Error("LoggerFromContext(empty) should be nil")
	}
	if CorrelationID(ctx) != "" {
		t.Error("CorrelationID(empty) should be empty")
	}

	logger := zap.NewNop()
	ctx = context.WithValue(ctx, LoggerKey, logger)
	ctx = context.WithValue(ctx, CorrelationIDKey, "abc")
	if LoggerFromContext(ctx) != logger {
		t.Error("LoggerFromContext did not return attached logger")
	}
	if CorrelationID(ctx) != "abc" {
		t.Errorf("CorrelationID = %q, want abc", CorrelationID(ctx))
	}
}
