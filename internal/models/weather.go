package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Coordinates is a validated latitude/longitude/unix-time triple.
// Construct it through validation.ValidateCoordinates.
type Coordinates struct {
	Latitude  float64
	Longitude float64
	Time      int64
}

// Path renders the coordinates as the /{lat}/{lon}/{time} route path.
// Floats use the shortest representation that round-trips, so 45.0 becomes "45".
func (c Coordinates) Path() string {
	return fmt.Sprintf("/%s/%s/%d", FormatDegrees(c.Latitude), FormatDegrees(c.Longitude), c.Time)
}

// FormatDegrees formats a coordinate without exponent notation.
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WeatherResult is the subset of the provider's forecast payload we keep.
type WeatherResult struct {
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Timezone  string             `json:"timezone,omitempty"`
	Currently *CurrentConditions `json:"currently,omitempty"`
}

// CurrentConditions describes present weather at the requested point.
// Any field may be absent from the provider response.
type CurrentConditions struct {
	Time        int64      `json:"time"`
	Summary     string     `json:"summary"`
	Temperature FlexString `json:"temperature"`
	Humidity    FlexString `json:"humidity"`
}

// FlexString accepts a JSON string or number. Numbers keep their JSON text.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
