package maps

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/ports"
)

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			Steps []struct {
				HTMLInstructions string `json:"html_instructions"`
				Distance         struct {
					Value int `json:"value"`
				} `json:"distance"`
				Duration struct {
					Value int `json:"value"`
				} `json:"duration"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetDirections fetches one route through the ordered waypoints. An
// unroutable point set (ZERO_RESULTS / NOT_FOUND) maps to
// domain.ErrRouteNotFound.
func (c *Client) GetDirections(ctx context.Context, origin, destination string, waypoints []string) (ports.DirectionsResult, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	if len(waypoints) > 0 {
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}

	var decoded directionsResponse
	if err := c.getJSON(ctx, "directions", "/directions/json", params, &decoded); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("directions %q -> %q: %w", origin, destination, err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return ports.DirectionsResult{}, fmt.Errorf("directions %q -> %q: %w", origin, destination, domain.ErrRouteNotFound)
	default:
		return ports.DirectionsResult{}, fmt.Errorf("directions %q -> %q: provider status %s: %s: %w",
			origin, destination, decoded.Status, decoded.ErrorMessage, domain.ErrServiceUnavailable)
	}

	if len(decoded.Routes) == 0 {
		return ports.DirectionsResult{}, fmt.Errorf("directions %q -> %q: %w", origin, destination, domain.ErrRouteNotFound)
	}

	route := decoded.Routes[0]
	out := ports.DirectionsResult{Polyline: route.OverviewPolyline.Points}
	for _, leg := range route.Legs {
		out.DistanceMeters += leg.Distance.Value
		out.DurationSeconds += leg.Duration.Value
		for _, step := range leg.Steps {
			out.Steps = append(out.Steps, domain.RouteStep{
				Instruction:     step.HTMLInstructions,
				DistanceMeters:  step.Distance.Value,
				DurationSeconds: step.Duration.Value,
			})
		}
	}
	return out, nil
}
