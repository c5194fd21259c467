package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/client"
	"github.com/kjstillabower/weather-lookup/internal/lifecycle"
	"github.com/kjstillabower/weather-lookup/internal/observability"
	"github.com/kjstillabower/weather-lookup/internal/service"
	"github.com/kjstillabower/weather-lookup/internal/validation"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	weatherService *service.WeatherService
	logger         *zap.Logger
}

// NewHandler returns a new Handler.
func NewHandler(weatherService *service.WeatherService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		weatherService: weatherService,
		logger:         logger,
	}
}

// GetForm handles GET /.
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	token, err := csrfToken(w, r)
	if err != nil {
		h.requestLogger(r).Error("issue csrf token", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "form.html", formView{CSRFToken: token})
}

// PostForm handles POST /. Valid coordinates redirect to /{lat}/{lon}/{time};
// violations re-render the form with per-field messages.
func (h *Handler) PostForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad request", "The form could not be read.", nil)
		return
	}

	view := formView{
		Latitude:  r.PostFormValue(validation.FieldLatitude),
		Longitude: r.PostFormValue(validation.FieldLongitude),
		Time:      r.PostFormValue(validation.FieldTime),
	}
	token, err := csrfToken(w, r)
	if err != nil {
		h.requestLogger(r).Error("issue csrf token", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	view.CSRFToken = token

	if !validCSRF(r) {
		h.requestLogger(r).Debug("csrf token rejected")
		view.FormError = "Your session expired. Please submit the form again."
		h.render(w, r, http.StatusBadRequest, "form.html", view)
		return
	}

	coords, err := validation.ValidateCoordinates(view.Latitude, view.Longitude, view.Time)
	if err != nil {
		var violations validation.Violations
		if !errors.As(err, &violations) {
			h.requestLogger(r).Error("unexpected validation error", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		recordRejections("form", violations)
		view.Errors = violations.ByField()
		h.render(w, r, http.StatusOK, "form.html", view)
		return
	}

	http.Redirect(w, r, coords.Path(), http.StatusFound)
}

// GetWeather handles GET /{lat}/{lon}/{time}. Malformed segments get 400 without
// an upstream call; upstream failures get 502.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	coords, err := validation.ValidateCoordinates(vars["lat"], vars["lon"], vars["time"])
	if err != nil {
		var details []string
		var violations validation.Violations
		if errors.As(err, &violations) {
			recordRejections("path", violations)
			for _, fe := range violations {
				details = append(details, fe.Error())
			}
		}
		h.renderError(w, r, http.StatusBadRequest, "Invalid coordinates", "The requested location or time is not valid.", details)
		return
	}

	result, err := h.weatherService.GetWeather(r.Context(), coords)
	if err != nil {
		category := client.CategorizeError(err)
		observability.WeatherAPIErrorsTotal.WithLabelValues(string(category)).Inc()
		h.requestLogger(r).Warn("weather lookup failed",
			zap.String("error_category", string(category)),
			zap.Float64("latitude", coords.Latitude),
			zap.Float64("longitude", coords.Longitude),
			zap.Int64("time", coords.Time),
			zap.Error(err))
		h.renderError(w, r, http.StatusBadGateway, "Weather unavailable", "Weather data could not be retrieved right now. Please try again later.", nil)
		return
	}

	h.render(w, r, http.StatusOK, "weather.html", newWeatherView(coords, result))
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, statusCode := "healthy", http.StatusOK
	if lifecycle.IsShuttingDown() {
		status, statusCode = "shutting-down", http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, map[string]interface{}{
		"status":         status,
		"service":        observability.ServiceName,
		"uptime_seconds": int64(lifecycle.Uptime().Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string, details []string) {
	h.render(w, r, status, "error.html", errorView{
		Title:     title,
		Message:   message,
		Details:   details,
		RequestID: observability.CorrelationID(r.Context()),
	})
}

// requestLogger returns the correlation-scoped logger when middleware attached one.
func (h *Handler) requestLogger(r *http.Request) *zap.Logger {
	if l := observability.LoggerFromContext(r.Context()); l != nil {
		return l
	}
	return h.logger
}

func recordRejections(source string, violations validation.Violations) {
	for _, fe := range violations {
		observability.ValidationRejectionsTotal.WithLabelValues(source, fe.Field).Inc()
	}
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
