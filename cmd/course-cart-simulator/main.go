// Package main boots the Course Cart Simulator HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/course-cart-simulator/internal/catalog"
	"github.com/fairyhunter13/course-cart-simulator/internal/config"
	httpapi "github.com/fairyhunter13/course-cart-simulator/internal/http"
	"github.com/fairyhunter13/course-cart-simulator/internal/obs"
	"github.com/fairyhunter13/course-cart-simulator/internal/session"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("service_starting")

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		obs.Logger.Error("catalog_load_error", "error", err, "path", cfg.CatalogFile)
		os.Exit(1)
	}
	page, err := catalog.Page(cat)
	if err != nil {
		obs.Logger.Error("page_render_error", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("catalog_loaded", "term", cat.Term, "courses", len(cat.Courses), "currency", cat.Currency)

	sessions := session.New(page, cfg.SessionTTL, cfg.SessionMax)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartSweeper(ctx, cfg.SessionSweepInterval)

	app := httpapi.NewApp(cfg, sessions)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()
	obs.Logger.Info("shutdown_begin", "sessions_active", sessions.Len())

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	cancel()
	obs.Logger.Info("service_stopped")
}
