package validation

import (
	"errors"
	"testing"

	"github.com/kjstillabower/weather-lookup/internal/models"
)

func TestValidateCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  string
		timestamp string
		want      models.Coordinates
	}{
		{"whole numbers", "45", "-122", "1700000000", models.Coordinates{Latitude: 45, Longitude: -122, Time: 1700000000}},
		{"fractional", "47.6062", "-122.3321", "1700000000", models.Coordinates{Latitude: 47.6062, Longitude: -122.3321, Time: 1700000000}},
		{"explicit plus", "+12.5", "+100", "1000000000", models.Coordinates{Latitude: 12.5, Longitude: 100, Time: 1000000000}},
		{"upper bounds", "90", "180", "9999999999", models.Coordinates{Latitude: 90, Longitude: 180, Time: 9999999999}},
		{"lower bounds", "-90.0", "-180.00", "1000000000", models.Coordinates{Latitude: -90, Longitude: -180, Time: 1000000000}},
		{"trimmed", "  45.0 ", " -122.0", "1700000000 ", models.Coordinates{Latitude: 45, Longitude: -122, Time: 1700000000}},
		{"zero", "0", "0", "1234567890", models.Coordinates{Latitude: 0, Longitude: 0, Time: 1234567890}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateCoordinates(tc.lat, tc.lon, tc.timestamp)
			if err != nil {
				t.Fatalf("ValidateCoordinates() err = %v", err)
			}
			if got != tc.want {
				t.Errorf("ValidateCoordinates() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestValidateCoordinates_LatitudeOutOfRange(t *testing.T) {
	for _, lat := range []string{"90.1", "-90.0001", "91", "-100", "180", "1e1", "NaN", "Inf", "abc", "45.", ".5", "4 5"} {
		t.Run(lat, func(t *testing.T) {
			_, err := ValidateCoordinates(lat, "0", "1700000000")
			assertOnlyField(t, err, FieldLatitude, ErrLatitudeOutOfRange)
		})
	}
}

func TestValidateCoordinates_LongitudeOutOfRange(t *testing.T) {
	for _, lon := range []string{"180.5", "-180.01", "181", "200", "-1000", "1e2", "Infinity", "west"} {
		t.Run(lon, func(t *testing.T) {
			_, err := ValidateCoordinates("0", lon, "1700000000")
			assertOnlyField(t, err, FieldLongitude, ErrLongitudeOutOfRange)
		})
	}
}

func TestValidateCoordinates_TimestampOutOfRange(t *testing.T) {
	for _, ts := range []string{"999999999", "10000000000", "0", "-1700000000", "1700000000.5", "now", "99999999999999999999"} {
		t.Run(ts, func(t *testing.T) {
			_, err := ValidateCoordinates("0", "0", ts)
			assertOnlyField(t, err, FieldTime, ErrTimestampOutOfRange)
		})
	}
}

func TestValidateCoordinates_Required(t *testing.T) {
	_, err := ValidateCoordinates("", "  ", "\t")
	var v Violations
	if !errors.As(err, &v) {
		t.Fatalf("error = %v, want Violations", err)
	}
	if len(v) != 3 {
		t.Fatalf("len(Violations) = %d, want 3", len(v))
	}
	for _, fe := range v {
		if !errors.Is(fe, ErrRequired) {
			t.Errorf("%s: err = %v, want ErrRequired", fe.Field, fe.Err)
		}
	}
	if !errors.Is(err, ErrRequired) {
		t.Error("errors.Is(Violations, ErrRequired) = false")
	}
}

func TestValidateCoordinates_ReportsEveryField(t *testing.T) {
	got, err := ValidateCoordinates("95", "-190", "42")
	if got != (models.Coordinates{}) {
		t.Errorf("expected zero Coordinates on failure, got %+v", got)
	}
	var v Violations
	if !errors.As(err, &v) {
		t.Fatalf("error = %v, want Violations", err)
	}
	byField := v.ByField()
	for _, field := range []string{FieldLatitude, FieldLongitude, FieldTime} {
		if byField[field] == "" {
			t.Errorf("missing violation for %s", field)
		}
	}
	for _, target := range []error{ErrLatitudeOutOfRange, ErrLongitudeOutOfRange, ErrTimestampOutOfRange} {
		if !errors.Is(err, target) {
			t.Errorf("errors.Is(err, %v) = false", target)
		}
	}
}

func TestValidateCoordinates_PathRoundTrip(t *testing.T) {
	in, err := ValidateCoordinates("45.0", "-122.0", "1700000000")
	if err != nil {
		t.Fatalf("ValidateCoordinates() err = %v", err)
	}
	path := in.Path()
	if path != "/45/-122/1700000000" {
		t.Fatalf("Path() = %q", path)
	}
	out, err := ValidateCoordinates(models.FormatDegrees(in.Latitude), models.FormatDegrees(in.Longitude), "1700000000")
	if err != nil {
		t.Fatalf("re-validate err = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func assertOnlyField(t *testing.T, err error, field string, want error) {
	t.Helper()
	var v Violations
	if !errors.As(err, &v) {
		t.Fatalf("error = %v, want Violations", err)
	}
	if len(v) != 1 {
		t.Fatalf("len(Violations) = %d, want 1: %v", len(v), v)
	}
	if v[0].Field != field {
		t.Errorf("Field = %q, want %q", v[0].Field, field)
	}
	if !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}
