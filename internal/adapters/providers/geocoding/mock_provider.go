package geocoding

import (
	"context"
	"fmt"
	"strings"

	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
)

// MockProvider implements a deterministic geocoding provider for
// development and tests.
type MockProvider struct{}

// NewMockProvider creates a new mock geocoding provider
func NewMockProvider() providers.GeocodingProvider {
	return &MockProvider{}
}

var mockCoordinates = map[string]providers.Coordinates{
	"New York":    {Latitude: 40.7128, Longitude: -74.0060},
	"Los Angeles": {Latitude: 34.0522, Longitude: -118.2437},
	"Chicago":     {Latitude: 41.8781, Longitude: -87.6298},
	"Houston":     {Latitude: 29.7604, Longitude: -95.3698},
	"Phoenix":     {Latitude: 33.4484, Longitude: -112.0740},
	"10001":       {Latitude: 40.7506, Longitude: -73.9972},
	"90001":       {Latitude: 33.9731, Longitude: -118.2479},
	"60601":       {Latitude: 41.8858, Longitude: -87.6229},
}

// Geocode matches known city names and zipcodes; anything else fails the
// same way an upstream miss would.
func (m *MockProvider) Geocode(ctx context.Context, address string) (providers.Coordinates, error) {
	for key, coords := range mockCoordinates {
		if strings.Contains(address, key) {
			return coords, nil
		}
	}
	return providers.Coordinates{}, fmt.Errorf("no results for address %q", address)
}
