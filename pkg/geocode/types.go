package geocode

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Query is a free-form place name to resolve; see Lookup.
type Query struct {
	Name string
}

// Result is the best match for a query.
type Result struct {
	Lat         Coordinate `json:"lat"`
	Lon         Coordinate `json:"lon"`
	DisplayName string     `json:"display_name"`
}

// Verify the custom type can be unmarshaled
var _ json.Unmarshaler = new(Coordinate)

// Coordinate is a latitude or longitude in degrees. Nominatim encodes them
// as strings.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("coordinate %q not a string: %w", buf, err)
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q not a float: %w", s, err)
	}
	*c = Coordinate(parsed)
	return nil
}
