package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"tutor-onboarding/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newMux serves /health and /metrics. A non-nil check is run on every health
// request; its failure turns the response into a 503.
func newMux(check func(context.Context) error) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		body := map[string]string{"time": time.Now().Format(time.RFC3339)}
		if check != nil {
			if err := check(r.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
				body["error"] = err.Error()
			}
		}
		body["status"] = status

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func startServer(addr string, check func(context.Context) error, log logger.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(check),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": addr})
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	return srv
}

func shutdownServer(srv *http.Server, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
