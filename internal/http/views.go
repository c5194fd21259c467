package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// formView is the data for form.html.
type formView struct {
	CSRFToken string
	FormError string
	Latitude  string
	Longitude string
	Time      string
	Errors    map[string]string
}

// weatherView is the data for weather.html.
type weatherView struct {
	Latitude    string
	Longitude   string
	RequestedAt string
	ObservedAt  string
	Result      models.WeatherResult
}

// errorView is the data for error.html.
type errorView struct {
	Title     string
	Message   string
	Details   []string
	RequestID string
}

func newWeatherView(coords models.Coordinates, result models.WeatherResult) weatherView {
	loc := time.UTC
	if result.Timezone != "" {
		if l, err := time.LoadLocation(result.Timezone); err == nil {
			loc = l
		}
	}
	v := weatherView{
		Latitude:    models.FormatDegrees(coords.Latitude),
		Longitude:   models.FormatDegrees(coords.Longitude),
		RequestedAt: formatUnix(coords.Time, loc),
		Result:      result,
	}
	if result.Currently != nil && result.Currently.Time != 0 {
		v.ObservedAt = formatUnix(result.Currently.Time, loc)
	}
	return v
}

func formatUnix(sec int64, loc *time.Location) string {
	return time.Unix(sec, 0).In(loc).Format("Mon, 02 Jan 2006 15:04 MST")
}

// render executes the named template into a buffer first so a template failure
// yields a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		h.requestLogger(r).Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
