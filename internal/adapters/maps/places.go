package maps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"geo-intel-service/internal/domain"
)

type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Types    []string `json:"types"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// NearbySearch returns up to limit places around center. Used both for
// alternative street-address suggestions and hotspot POI enrichment.
func (c *Client) NearbySearch(ctx context.Context, center domain.Coordinate, radiusMeters, limit int) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("location", strconv.FormatFloat(center.Lat, 'f', -1, 64)+","+strconv.FormatFloat(center.Lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radiusMeters))

	var decoded nearbyResponse
	if err := c.getJSON(ctx, "nearby_search", "/place/nearbysearch/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("nearby search around %v: %w", center, err)
	}
	if err := checkStatus(decoded.Status, decoded.ErrorMessage); err != nil {
		return nil, fmt.Errorf("nearby search around %v: %w", center, err)
	}

	out := make([]domain.Place, 0, limit)
	for _, r := range decoded.Results {
		if len(out) == limit {
			break
		}
		category := ""
		if len(r.Types) > 0 {
			category = r.Types[0]
		}
		out = append(out, domain.Place{
			Name:     r.Name,
			Location: domain.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Category: category,
			Vicinity: r.Vicinity,
		})
	}
	return out, nil
}
