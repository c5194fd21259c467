package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/kjstillabower/weather-lookup/internal/models"
)

// Field names as submitted by the coordinate form.
const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldTime      = "time"
)

// Unix timestamp bounds (ten-digit seconds).
const (
	MinTimestamp int64 = 1_000_000_000
	MaxTimestamp int64 = 9_999_999_999
)

// ErrRequired is returned for a field that is empty or whitespace-only.
var ErrRequired = errors.New("field is required")

// ErrLatitudeOutOfRange is returned when latitude is not a decimal in [-90, 90].
var ErrLatitudeOutOfRange = errors.New("latitude must be a decimal between -90 and 90")

// ErrLongitudeOutOfRange is returned when longitude is not a decimal in [-180, 180].
var ErrLongitudeOutOfRange = errors.New("longitude must be a decimal between -180 and 180")

// ErrTimestampOutOfRange is returned when time is not an integer in [MinTimestamp, MaxTimestamp].
var ErrTimestampOutOfRange = errors.New("time must be a unix timestamp between 1000000000 and 9999999999")

var (
	latitudePattern  = regexp.MustCompile(`^[-+]?([1-8]?\d(\.\d+)?|90(\.0+)?)$`)
	longitudePattern = regexp.MustCompile(`^[-+]?(180(\.0+)?|((1[0-7]\d)|([1-9]?\d))(\.\d+)?)$`)
)

// FieldError is a single field violation.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// Violations lists every failing field of one submission.
type Violations []FieldError

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return "invalid coordinates: " + strings.Join(parts, "; ")
}

func (v Violations) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, fe := range v {
		errs = append(errs, fe)
	}
	return errs
}

// ByField returns messages keyed by field name, for re-rendering a form.
func (v Violations) ByField() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// ValidateCoordinates checks raw latitude, longitude and time values and returns
// the parsed Coordinates. On failure the error is a Violations covering every bad field;
// values are never clamped.
func ValidateCoordinates(latitude, longitude, timestamp string) (models.Coordinates, error) {
	var violations Violations

	lat, err := parseDegrees(latitude, latitudePattern, ErrLatitudeOutOfRange)
	if err != nil {
		violations = append(violations, fieldError(FieldLatitude, err))
	}
	lon, err := parseDegrees(longitude, longitudePattern, ErrLongitudeOutOfRange)
	if err != nil {
		violations = append(violations, fieldError(FieldLongitude, err))
	}
	ts, err := parseTimestamp(timestamp)
	if err != nil {
		violations = append(violations, fieldError(FieldTime, err))
	}

	if len(violations) > 0 {
		return models.Coordinates{}, violations
	}
	return models.Coordinates{Latitude: lat, Longitude: lon, Time: ts}, nil
}

func fieldError(field string, err error) FieldError {
	return FieldError{Field: field, Message: err.Error(), Err: err}
}

// parseDegrees applies the decimal pattern before parsing, which also rejects
// exponent notation, NaN and Inf that strconv would otherwise accept.
func parseDegrees(raw string, pattern *regexp.Regexp, rangeErr error) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrRequired
	}
	if !pattern.MatchString(s) {
		return 0, rangeErr
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, rangeErr
	}
	return v, nil
}

func parseTimestamp(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrRequired
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts < MinTimestamp || ts > MaxTimestamp {
		return 0, ErrTimestampOutOfRange
	}
	return ts, nil
}
