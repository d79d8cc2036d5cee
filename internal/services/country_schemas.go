package services

import "strings"

// CountrySchema lists the component types an address in that country is
// expected to carry. Required drives which provider components are kept on
// the validation result; Optional components are kept when present.
type CountrySchema struct {
	Required []string
	Optional []string
}

// alpha-3 -> alpha-2 folding for the markets in the schema table.
var alpha3ToAlpha2 = map[string]string{
	"USA": "US",
	"GBR": "GB",
	"CAN": "CA",
	"AUS": "AU",
	"BRA": "BR",
	"MEX": "MX",
	"ARE": "AE",
	"IND": "IN",
}

// DefaultCountrySchemas covers the operating markets. The table is a
// read-only configuration input; extend it rather than special-casing codes.
func DefaultCountrySchemas() map[string]CountrySchema {
	street := []string{"street_number", "route"}
	return map[string]CountrySchema{
		"US": {
			Required: append(street, "locality", "administrative_area_level_1", "postal_code"),
			Optional: []string{"subpremise", "neighborhood", "country"},
		},
		"GB": {
			Required: append(street, "postal_town", "postal_code"),
			Optional: []string{"subpremise", "locality", "administrative_area_level_2", "country"},
		},
		"CA": {
			Required: append(street, "locality", "administrative_area_level_1", "postal_code"),
			Optional: []string{"subpremise", "country"},
		},
		"AU": {
			Required: append(street, "locality", "administrative_area_level_1", "postal_code"),
			Optional: []string{"subpremise", "country"},
		},
		"BR": {
			Required: append(street, "sublocality", "administrative_area_level_2", "administrative_area_level_1", "postal_code"),
			Optional: []string{"subpremise", "country"},
		},
		"MX": {
			Required: append(street, "sublocality", "locality", "administrative_area_level_1", "postal_code"),
			Optional: []string{"subpremise", "country"},
		},
		"AE": {
			Required: []string{"route", "sublocality", "locality"},
			Optional: []string{"street_number", "subpremise", "country"},
		},
		"IN": {
			Required: append(street, "locality", "administrative_area_level_1", "postal_code"),
			Optional: []string{"subpremise", "sublocality", "country"},
		},
	}
}

// normalizeCountryCode folds input to upper-case alpha-2. Returns "" for
// codes that cannot be folded.
func normalizeCountryCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch len(code) {
	case 2:
		return code
	case 3:
		return alpha3ToAlpha2[code]
	default:
		return ""
	}
}
