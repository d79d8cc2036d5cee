package api

import (
	"net/http"

	"geo-intel-service/internal/api/handlers"
	"geo-intel-service/internal/metrics"
	"geo-intel-service/internal/ports"
	"geo-intel-service/internal/services"
)

// Deps carries the wired services into the router. Handlers stay unaware of
// concrete adapters.
type Deps struct {
	Resolver  *services.AddressResolver
	Routes    *services.RouteEngine
	Geofences *services.GeofenceEngine
	Hotspots  *services.HotspotAnalyzer
	History   ports.DeliveryHistorySource
	Health    *services.HealthMonitor
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	addresses := &handlers.AddressHandler{Resolver: deps.Resolver}
	routes := &handlers.RouteHandler{Engine: deps.Routes}
	geofences := &handlers.GeofenceHandler{Engine: deps.Geofences}
	hotspots := &handlers.HotspotHandler{Analyzer: deps.Hotspots, History: deps.History}
	health := &handlers.HealthHandler{Monitor: deps.Health}

	mux.HandleFunc("GET /health", health.Status)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /addresses/validate", addresses.Validate)
	mux.HandleFunc("POST /addresses/validate-batch", addresses.ValidateBatch)
	mux.HandleFunc("POST /addresses/reverse-geocode", addresses.ReverseGeocode)

	mux.HandleFunc("POST /routes", routes.Calculate)
	mux.HandleFunc("POST /routes/optimize", routes.Optimize)
	mux.HandleFunc("POST /routes/time-windows", routes.TimeWindows)

	mux.HandleFunc("POST /geofences", geofences.Create)
	mux.HandleFunc("GET /geofences", geofences.List)
	mux.HandleFunc("GET /geofences/{id}", geofences.Get)
	mux.HandleFunc("PUT /geofences/{id}", geofences.Update)
	mux.HandleFunc("DELETE /geofences/{id}", geofences.Deactivate)
	mux.HandleFunc("GET /geofences/{id}/contains", geofences.Contains)

	mux.HandleFunc("POST /hotspots/analyze", hotspots.Analyze)

	return loggingMiddleware(mux)
}
