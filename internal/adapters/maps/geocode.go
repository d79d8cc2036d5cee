package maps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress  string `json:"formatted_address"`
		PlaceID           string `json:"place_id"`
		PartialMatch      bool   `json:"partial_match"`
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address constrained to one country
// (components=country:XX).
func (c *Client) Geocode(ctx context.Context, address, countryCode string) ([]ports.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("components", "country:"+countryCode)

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "geocode", "/geocode/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if err := checkStatus(decoded.Status, decoded.ErrorMessage); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}

	return mapGeocodeResults(decoded), nil
}

// ReverseGeocode resolves a coordinate to candidate addresses.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) ([]ports.GeocodeResult, error) {
	params := url.Values{}
	params.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "reverse_geocode", "/geocode/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("reverse geocode (%v, %v): %w", lat, lng, err)
	}
	if err := checkStatus(decoded.Status, decoded.ErrorMessage); err != nil {
		return nil, fmt.Errorf("reverse geocode (%v, %v): %w", lat, lng, err)
	}

	return mapGeocodeResults(decoded), nil
}

func mapGeocodeResults(decoded geocodeResponse) []ports.GeocodeResult {
	out := make([]ports.GeocodeResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		components := make([]domain.AddressComponent, 0, len(r.AddressComponents))
		for _, ac := range r.AddressComponents {
			components = append(components, domain.AddressComponent{
				LongName:  ac.LongName,
				ShortName: ac.ShortName,
				Types:     ac.Types,
			})
		}
		out = append(out, ports.GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			Components:       components,
			Location:         domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			PlaceID:          r.PlaceID,
			LocationType:     r.Geometry.LocationType,
			PartialMatch:     r.PartialMatch,
		})
	}
	return out
}
