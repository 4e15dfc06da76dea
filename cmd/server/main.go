package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/files"
	"trip-planner-service/internal/adapters/geocode"
	"trip-planner-service/internal/adapters/tripapi"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/planner"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (ORS geocoding, the trip API, a geocode
// cache) behind ports and starts the session HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	tripAPIURL := config.Get("TRIP_API_URL", "http://localhost:8000/api")
	downloadDir := config.Get("DOWNLOAD_DIR", "data/downloads")
	dbPath := config.Get("DB_PATH", "data/app.db")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	geocodeCache, closeCache, err := openGeocodeCache(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	ors, err := geocode.NewORSGeocoder(orsKey)
	if err != nil {
		log.Fatal(err)
	}
	geocoder := geocode.NewCachedGeocoder(ors, geocodeCache)

	sink, err := files.NewDirSink(downloadDir)
	if err != nil {
		log.Fatal(err)
	}

	trips, err := tripapi.NewClient(tripAPIURL, sink)
	if err != nil {
		log.Fatal(err)
	}

	factory := func() *planner.Orchestrator {
		return planner.New(geocoder, trips, trips, logRouteSummary)
	}

	router := api.NewRouter(factory)

	// Timeouts are tuned for route submission (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openGeocodeCache picks the geocode cache backend: Redis when
// REDIS_ADDR is set, shared Postgres when DATABASE_URL is set
// (schema via dbtool), local SQLite otherwise.
func openGeocodeCache(dbPath string) (ports.GeocodeCache, func(), error) {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		c := cache.NewRedisGeocodeCache(client, 24*time.Hour)
		return c, func() { _ = client.Close() }, nil
	}

	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		pg, err := db.Open(url)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewSQLGeocodeCache(pg), func() { _ = pg.Close() }, nil
	}

	sqlite, err := openDB(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := cache.InitSchema(sqlite); err != nil {
		sqlite.Close()
		return nil, nil, err
	}

	return cache.NewSqliteGeocodeCache(sqlite), func() { _ = sqlite.Close() }, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// logRouteSummary is the sibling consumer of successful submissions:
// the data hand-off that a map renderer would subscribe to.
func logRouteSummary(r domain.RouteResult) {
	log.Printf(
		"route calculated trip_id=%s fuel_stops=%d schedule_days=%d",
		r.TripID, r.FuelStops, len(r.Schedule),
	)
}
