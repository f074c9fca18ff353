package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter serves /metrics and /healthz
func NewRouter(telemetry *Telemetry) *mux.Router {
	router := mux.NewRouter()
	router.Use(telemetry.Middleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "ok")
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

// NewServer creates the metrics server listening on addr
func NewServer(addr string, telemetry *Telemetry) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewRouter(telemetry),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
