package ports

import (
	"context"
	"geo-intel-service/internal/domain"
)

// Location-type labels reported by the geocoder, used for confidence tiering.
const (
	LocationTypeRooftop           = "ROOFTOP"
	LocationTypeRangeInterpolated = "RANGE_INTERPOLATED"
	LocationTypeGeometricCenter   = "GEOMETRIC_CENTER"
	LocationTypeApproximate       = "APPROXIMATE"
)

// One geocoder match with the metadata needed for confidence scoring.
type GeocodeResult struct {
	FormattedAddress string
	Components       []domain.AddressComponent
	Location         domain.Coordinate
	PlaceID          string
	LocationType     string
	PartialMatch     bool
}

// Contract for forward and reverse geocoding against the mapping provider.
// An empty slice means the provider found nothing; errors are transport or
// provider failures.
type GeocodingProvider interface {
	// Geocode resolves a free-text address, constrained to a country
	// (ISO-3166-1 alpha-2).
	Geocode(ctx context.Context, address, countryCode string) ([]GeocodeResult, error)
	// ReverseGeocode resolves a coordinate to candidate addresses.
	ReverseGeocode(ctx context.Context, lat, lng float64) ([]GeocodeResult, error)
}

// Contract for nearby point-of-interest lookups.
type PlacesProvider interface {
	// NearbySearch returns up to limit places within radiusMeters of center.
	NearbySearch(ctx context.Context, center domain.Coordinate, radiusMeters, limit int) ([]domain.Place, error)
}
