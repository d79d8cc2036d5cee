package domain

type ValidationStatus string

const (
	StatusValid   ValidationStatus = "VALID"
	StatusInvalid ValidationStatus = "INVALID"
)

// Confidence is a coarse accuracy tier derived from geocoder metadata.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// One structured part of a formatted address (street number, route,
// locality, ...), typed the way the provider reports it.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// A candidate interpretation offered alongside a primary result.
type Suggestion struct {
	FormattedAddress string     `json:"formatted_address"`
	Location         Coordinate `json:"location"`
	PlaceID          string     `json:"place_id,omitempty"`
}

// ValidationResult is the outcome of resolving one free-text address.
// It is produced fresh per call and never persisted by this service.
// Confidence is populated only when Status is VALID. Suggestions carries
// up to five alternative candidates.
type ValidationResult struct {
	Status           ValidationStatus   `json:"status"`
	Confidence       Confidence         `json:"confidence,omitempty"`
	FormattedAddress string             `json:"formatted_address,omitempty"`
	Components       []AddressComponent `json:"components,omitempty"`
	Location         Coordinate         `json:"location"`
	PlaceID          string             `json:"place_id,omitempty"`
	Suggestions      []Suggestion       `json:"suggestions,omitempty"`
}

// ReverseGeocodeResult is a ValidationResult for a lat/lng lookup, with up
// to three alternative interpretations beyond the primary.
type ReverseGeocodeResult struct {
	ValidationResult
	Alternatives []Suggestion `json:"alternatives,omitempty"`
}

// MaxSuggestions bounds alternative candidates on forward lookups;
// MaxReverseAlternatives bounds them on reverse lookups.
const (
	MaxSuggestions         = 5
	MaxReverseAlternatives = 3
)
