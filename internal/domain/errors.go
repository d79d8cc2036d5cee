package domain

import "errors"

// Error kinds surfaced by the geospatial services. Callers match these with
// errors.Is; adapters and services wrap them with operation context.
var (
	// ErrUnsupportedRegion rejects country codes with no address schema,
	// before any provider call is made.
	ErrUnsupportedRegion = errors.New("unsupported region")

	// ErrValidationFailed marks an address with no confident match. The
	// accompanying result still carries suggestions.
	ErrValidationFailed = errors.New("address validation failed")

	// ErrNoMatchFound is returned when a reverse geocode yields no results.
	ErrNoMatchFound = errors.New("no match found")

	// ErrRouteNotFound is returned when the provider cannot connect the
	// requested points.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidGeometry rejects polygon rings that are open or have fewer
	// than four vertices.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrGeofenceNotFound is returned for unknown or deactivated geofence ids.
	ErrGeofenceNotFound = errors.New("geofence not found")

	// ErrServiceUnavailable wraps provider timeouts and 5xx responses. It is
	// surfaced as-is; this layer does not retry.
	ErrServiceUnavailable = errors.New("mapping service unavailable")
)
