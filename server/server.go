package server

import (
	"context"
	"fmt"
	"net/http"

	v1 "github.com/bookverse/bookverse/api/v1"
	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/log"
	"github.com/bookverse/bookverse/store"
	"github.com/bookverse/bookverse/version"
	"github.com/bookverse/bookverse/worker"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StartServer starts the HTTP server
func StartServer(ctx context.Context, store *store.Store, pool worker.WorkPool) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, pool),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

func setupHandler(store *store.Store, pool worker.WorkPool) http.Handler {
	router := mux.NewRouter()

	apiHandler := v1.NewHandler(store, pool)
	v1.Server(router, apiHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			log.Error("Healthcheck failed", zap.Error(err))
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		stats := store.DBStats()
		log.Debug("Healthcheck",
			zap.Int("open_connections", stats.OpenConnections),
			zap.Int64("wait_count", stats.WaitCount))

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
