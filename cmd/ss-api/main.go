package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/query"
)

// parseRange extracts the [from, to] second range from the request's query
// parameters, defaulting to the full representable range.
func parseRange(r *http.Request) (uint64, uint64, error) {
	from, to := uint64(0), uint64(math.MaxUint64)
	var err error

	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	return from, to, nil
}

func newHTTPHandler(querier query.Querier) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/api/v1/counts", func(w http.ResponseWriter, r *http.Request) {
		from, to, err := parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		points, err := querier.CountsInRange(r.Context(), from, to)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(points)
	}).Methods("GET")

	r.HandleFunc("/api/v1/peak", func(w http.ResponseWriter, r *http.Request) {
		from, to, err := parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		point, err := querier.Peak(r.Context(), from, to)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(point)
	}).Methods("GET")

	return r
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	querier, err := query.NewClickHouseQuerier(cfg.API.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to create querier: %v", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.API.HTTPListenAddr,
		Handler: newHTTPHandler(querier),
	}

	go func() {
		log.Printf("HTTP API server starting on %s", cfg.API.HTTPListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)

	log.Println("Server exited.")
}
