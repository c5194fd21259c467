package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/observability"
)

// NewRouter registers the form, weather, health and metrics routes.
// requestTimeout bounds the weather route, which is the only one calling upstream.
func NewRouter(handler *Handler, logger *zap.Logger, requestTimeout time.Duration) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)

	router.HandleFunc("/", handler.GetForm).Methods(http.MethodGet)
	router.HandleFunc("/", handler.PostForm).Methods(http.MethodPost)
	router.HandleFunc("/health", handler.GetHealth).Methods(http.MethodGet)
	router.Handle("/metrics", observability.MetricsHandler())

	weatherRouter := router.NewRoute().Subrouter()
	weatherRouter.Use(TimeoutMiddleware(requestTimeout))
	weatherRouter.HandleFunc("/{lat}/{lon}/{time}", handler.GetWeather).Methods(http.MethodGet)

	return router
}
