package providers

import "context"

// Coordinates represents a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether the coordinates are the unresolved sentinel.
// (0, 0) is never treated as a real position.
func (c Coordinates) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// GeocodingProvider converts free-text addresses to coordinates.
type GeocodingProvider interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}
