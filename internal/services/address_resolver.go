package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"geo-intel-service/internal/domain"
	"geo-intel-service/internal/platform/obs"
	"geo-intel-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Cap on concurrent provider calls during batch validation.
const batchConcurrency = 5

// Radius used when fetching alternative street addresses around a
// non-HIGH-confidence match.
const suggestionRadiusMeters = 1000

// unitTokenRe matches apartment/unit/suite/floor tokens that geocoders
// frequently choke on. Stripping them is the fuzzy-retry normalization.
var unitTokenRe = regexp.MustCompile(`(?i)\b(?:apt\.?|apartment|unit|suite|ste\.?|floor|fl\.?)\s*#?\s*[0-9A-Za-z-]*|#\s*[0-9A-Za-z-]+`)

// AddressResolver turns free-text addresses and coordinates into validated,
// confidence-scored locations. It is stateless per call; all state lives in
// the external provider. Safe for concurrent use.
type AddressResolver struct {
	geo     ports.GeocodingProvider
	places  ports.PlacesProvider
	schemas map[string]CountrySchema
}

func NewAddressResolver(geo ports.GeocodingProvider, places ports.PlacesProvider, schemas map[string]CountrySchema) *AddressResolver {
	if schemas == nil {
		schemas = DefaultCountrySchemas()
	}
	return &AddressResolver{geo: geo, places: places, schemas: schemas}
}

// ValidateAddress resolves a free-text address constrained to a country.
//
// An unknown country code fails with domain.ErrUnsupportedRegion before any
// provider call. A zero-result lookup triggers one fuzzy retry with unit
// tokens stripped; a zero-result retry yields an INVALID result (not an
// error). Provider failures surface domain.ErrServiceUnavailable.
func (r *AddressResolver) ValidateAddress(ctx context.Context, address, countryCode string) (_ *domain.ValidationResult, err error) {
	defer obs.Time(ctx, "resolver.ValidateAddress")(&err)

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("validate address: address must be non-empty")
	}

	cc := normalizeCountryCode(countryCode)
	schema, ok := r.schemas[cc]
	if !ok {
		return nil, fmt.Errorf("validate address: country %q: %w", countryCode, domain.ErrUnsupportedRegion)
	}

	results, err := r.geo.Geocode(ctx, address, cc)
	if err != nil {
		return nil, fmt.Errorf("validate address %q: %w", address, err)
	}

	if len(results) == 0 {
		// Single fuzzy retry on the simplified string. This is a
		// semantically different second attempt, not a retry of the same
		// request, and it only applies to zero-result outcomes.
		simplified := stripUnitTokens(address)
		if simplified != "" && simplified != address {
			results, err = r.geo.Geocode(ctx, simplified, cc)
			if err != nil {
				return nil, fmt.Errorf("validate address %q (fuzzy retry): %w", simplified, err)
			}
		}
		if len(results) == 0 {
			return &domain.ValidationResult{Status: domain.StatusInvalid}, nil
		}
	}

	best := results[0]
	confidence := confidenceFor(best.LocationType, best.PartialMatch)

	out := &domain.ValidationResult{
		Status:           domain.StatusValid,
		Confidence:       confidence,
		FormattedAddress: best.FormattedAddress,
		Components:       filterComponents(best.Components, schema),
		Location:         best.Location,
		PlaceID:          best.PlaceID,
	}

	for _, alt := range results[1:] {
		if len(out.Suggestions) == domain.MaxSuggestions {
			break
		}
		out.Suggestions = append(out.Suggestions, domain.Suggestion{
			FormattedAddress: alt.FormattedAddress,
			Location:         alt.Location,
			PlaceID:          alt.PlaceID,
		})
	}

	if confidence != domain.ConfidenceHigh && r.places != nil {
		out.Suggestions = r.appendNearbySuggestions(ctx, out.Suggestions, best.Location)
	}

	return out, nil
}

// BatchItem is one entry of a batch validation response. Success is false
// when the item errored or validated INVALID; Result still carries
// suggestions in the latter case.
type BatchItem struct {
	Address string
	Result  *domain.ValidationResult
	Err     error
	Success bool
}

// ValidateMultipleAddresses validates each address independently with
// bounded parallelism. A failure on one address never aborts the batch;
// output order matches input order.
func (r *AddressResolver) ValidateMultipleAddresses(ctx context.Context, addresses []string, countryCode string) ([]BatchItem, error) {
	if normalizeCountryCode(countryCode) == "" || !r.supports(countryCode) {
		return nil, fmt.Errorf("validate addresses: country %q: %w", countryCode, domain.ErrUnsupportedRegion)
	}

	items := make([]BatchItem, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, addr := range addresses {
		g.Go(func() error {
			res, err := r.ValidateAddress(gctx, addr, countryCode)
			item := BatchItem{Address: addr, Result: res, Err: err}
			if err == nil && res.Status == domain.StatusInvalid {
				item.Err = fmt.Errorf("address %q: %w", addr, domain.ErrValidationFailed)
			}
			item.Success = item.Err == nil
			items[i] = item
			return nil // per-item failures stay in the item
		})
	}
	// Goroutines only return nil; Wait is for joining.
	_ = g.Wait()

	return items, nil
}

// ReverseGeocode resolves a coordinate to its best address interpretation
// plus up to three alternatives. Empty provider output fails with
// domain.ErrNoMatchFound.
func (r *AddressResolver) ReverseGeocode(ctx context.Context, lat, lng float64) (_ *domain.ReverseGeocodeResult, err error) {
	defer obs.Time(ctx, "resolver.ReverseGeocode")(&err)

	if _, err := domain.NewCoordinate(lat, lng); err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	results, err := r.geo.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode (%v, %v): %w", lat, lng, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("reverse geocode (%v, %v): %w", lat, lng, domain.ErrNoMatchFound)
	}

	best := results[0]
	out := &domain.ReverseGeocodeResult{
		ValidationResult: domain.ValidationResult{
			Status:           domain.StatusValid,
			Confidence:       confidenceFor(best.LocationType, best.PartialMatch),
			FormattedAddress: best.FormattedAddress,
			Components:       best.Components,
			Location:         best.Location,
			PlaceID:          best.PlaceID,
		},
	}
	for _, alt := range results[1:] {
		if len(out.Alternatives) == domain.MaxReverseAlternatives {
			break
		}
		out.Alternatives = append(out.Alternatives, domain.Suggestion{
			FormattedAddress: alt.FormattedAddress,
			Location:         alt.Location,
			PlaceID:          alt.PlaceID,
		})
	}

	return out, nil
}

func (r *AddressResolver) supports(countryCode string) bool {
	_, ok := r.schemas[normalizeCountryCode(countryCode)]
	return ok
}

// appendNearbySuggestions adds up to the remaining suggestion budget from a
// nearby street-address search. Suggestions are best-effort: a provider
// failure here is logged, not surfaced.
func (r *AddressResolver) appendNearbySuggestions(ctx context.Context, existing []domain.Suggestion, center domain.Coordinate) []domain.Suggestion {
	budget := domain.MaxSuggestions - len(existing)
	if budget <= 0 {
		return existing
	}

	places, err := r.places.NearbySearch(ctx, center, suggestionRadiusMeters, budget)
	if err != nil {
		log.Printf("nearby suggestions lookup failed: %v", err)
		return existing
	}
	for _, p := range places {
		name := p.Name
		if p.Vicinity != "" {
			name = p.Name + ", " + p.Vicinity
		}
		existing = append(existing, domain.Suggestion{
			FormattedAddress: name,
			Location:         p.Location,
		})
	}
	return existing
}

// confidenceFor maps geocoder metadata to a tier. Deterministic: identical
// (locationType, partialMatch) always yields the same label.
func confidenceFor(locationType string, partialMatch bool) domain.Confidence {
	switch {
	case locationType == ports.LocationTypeRooftop && !partialMatch:
		return domain.ConfidenceHigh
	case locationType == ports.LocationTypeRangeInterpolated,
		locationType == ports.LocationTypeGeometricCenter:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// stripUnitTokens drops apartment/unit/suite/floor qualifiers and collapses
// whitespace, producing the simplified string for the fuzzy retry.
func stripUnitTokens(address string) string {
	simplified := unitTokenRe.ReplaceAllString(address, " ")
	simplified = strings.Trim(simplified, " ,")
	return strings.Join(strings.Fields(simplified), " ")
}

// filterComponents keeps the components the country schema knows about.
func filterComponents(components []domain.AddressComponent, schema CountrySchema) []domain.AddressComponent {
	keep := make(map[string]struct{}, len(schema.Required)+len(schema.Optional))
	for _, t := range schema.Required {
		keep[t] = struct{}{}
	}
	for _, t := range schema.Optional {
		keep[t] = struct{}{}
	}

	out := make([]domain.AddressComponent, 0, len(components))
	for _, c := range components {
		for _, t := range c.Types {
			if _, ok := keep[t]; ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
