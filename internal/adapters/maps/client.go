package maps

import (
	"errors"
	"net/http"
	"time"

	"geo-intel-service/internal/ports"
)

// Client implements the geocoding, places, and directions ports against a
// Google-style mapping API.
//
// Every call is a single blocking request with a bounded timeout. There is
// deliberately no retry loop here: provider failures surface as
// domain.ErrServiceUnavailable and the caller decides what to do. Safe for
// concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
}

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// NewClient builds a provider client. baseURL is overridable for tests;
// empty selects the production endpoint.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
	}, nil
}

var (
	_ ports.GeocodingProvider  = (*Client)(nil)
	_ ports.PlacesProvider     = (*Client)(nil)
	_ ports.DirectionsProvider = (*Client)(nil)
)
