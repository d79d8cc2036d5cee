package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"geo-intel-service/internal/adapters/events"
	"geo-intel-service/internal/adapters/maps"
	"geo-intel-service/internal/adapters/repositories"
	"geo-intel-service/internal/api"
	"geo-intel-service/internal/config"
	"geo-intel-service/internal/platform/db"
	"geo-intel-service/internal/ports"
	"geo-intel-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (maps provider, postgres, redis, kafka) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("MAPS_API_KEY is required")
	}

	requestTimeout := config.GetDuration("PROVIDER_TIMEOUT", 5*time.Second)
	provider, err := maps.NewClient(apiKey, config.Get("MAPS_BASE_URL", ""), requestTimeout)
	if err != nil {
		log.Fatal(err)
	}

	// Geofence storage: redis when configured, in-process otherwise.
	var geofenceRepo ports.GeofenceRepository = repositories.NewMemoryGeofenceRepository()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       config.GetInt("REDIS_DB", 0),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		geofenceRepo = repositories.NewRedisGeofenceRepository(client)
	}

	// Time-window cache rows are the only subsystem-owned persisted shape.
	var timeWindowCache ports.TimeWindowCache
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pool, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repositories.InitSchema(pool); err != nil {
			log.Fatal(err)
		}
		timeWindowCache = repositories.NewPostgresTimeWindowCache(pool)
	} else {
		log.Println("DATABASE_URL not set; time-window reports will not be cached")
	}

	resolver := services.NewAddressResolver(provider, provider, nil)

	policy := services.DefaultOptimizationPolicy()
	policy.TimeWindowBonusMeters = config.GetFloat("OPT_TIME_WINDOW_BONUS_METERS", policy.TimeWindowBonusMeters)
	policy.PremiumBonusMeters = config.GetFloat("OPT_PREMIUM_BONUS_METERS", policy.PremiumBonusMeters)
	policy.ValueBonusMetersPerUnit = config.GetFloat("OPT_VALUE_BONUS_METERS_PER_UNIT", policy.ValueBonusMetersPerUnit)
	policy.ValueBonusCapMeters = config.GetFloat("OPT_VALUE_BONUS_CAP_METERS", policy.ValueBonusCapMeters)
	policy.AverageSpeedMetersPerSec = config.GetFloat("OPT_AVERAGE_SPEED_MPS", policy.AverageSpeedMetersPerSec)
	routeEngine := services.NewRouteEngine(provider, timeWindowCache, policy, nil)

	geofenceEngine := services.NewGeofenceEngine(geofenceRepo)

	dbscan := services.DBSCAN{
		EpsMeters: config.GetFloat("HOTSPOT_EPS_METERS", services.DefaultDBSCAN().EpsMeters),
		MinPts:    config.GetInt("HOTSPOT_MIN_POINTS", services.DefaultDBSCAN().MinPts),
	}
	analyzer := services.NewHotspotAnalyzer(dbscan, provider, dbscan.EpsMeters, config.GetInt("HOTSPOT_MAX_NEARBY", 5))

	// Delivery-event stream feeding hotspot analysis, optional per env.
	var history ports.DeliveryHistorySource
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		source := events.NewKafkaHistorySource(
			strings.Split(brokers, ","),
			config.Get("KAFKA_DELIVERY_TOPIC", "delivery-events"),
			config.Get("KAFKA_GROUP_ID", "geo-intel-hotspots"),
			config.GetDuration("KAFKA_POLL_TIMEOUT", 2*time.Second),
		)
		defer source.Close()
		history = source
	}

	// Health probes get their own timeout so they never share budget with
	// user-facing calls.
	monitor := services.NewHealthMonitor(
		config.GetDuration("HEALTH_INTERVAL", 60*time.Second),
		config.GetDuration("HEALTH_TIMEOUT", 10*time.Second),
	)
	monitor.Register("geometry", services.GeometryCheck())
	monitor.Register("resolver", services.ResolverCheck(
		resolver,
		config.Get("HEALTH_PROBE_ADDRESS", "1600 Amphitheatre Parkway, Mountain View, CA"),
		config.Get("HEALTH_PROBE_COUNTRY", "US"),
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Run(ctx)

	router := api.NewRouter(api.Deps{
		Resolver:  resolver,
		Routes:    routeEngine,
		Geofences: geofenceEngine,
		Hotspots:  analyzer,
		History:   history,
		Health:    monitor,
	})

	port := config.Get("PORT", "8080")
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
