package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"espejo-admin/config"
	"espejo-admin/internal/api"
	httpapi "espejo-admin/internal/api/http"
	"espejo-admin/internal/notify"
	"espejo-admin/internal/service"
	"espejo-admin/internal/store"
	"espejo-admin/internal/syncer"
)

func main() {
	cfg := config.Load()

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithAttempts(cfg.RetryAttempts),
	)

	st := store.New()
	notifier := notify.NewQueue()
	defer notifier.Close()

	opts := []syncer.Option{syncer.WithInterval(cfg.PollInterval)}
	if rdb := cfg.MustInitRedis(); rdb != nil {
		defer rdb.Close()
		opts = append(opts, syncer.WithCache(store.NewSnapshotCache(rdb)))
	}
	sync := syncer.New(service.NewMirrorService(client), st, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sync.WarmFromCache(ctx)
	if err := sync.Refresh(ctx); err != nil {
		log.Printf("Warning: initial refresh failed: %v", err)
	}
	sync.Start(ctx)
	defer sync.Stop()

	handler := &httpapi.Handler{
		Reservations: service.NewReservationService(client),
		Tables:       service.NewTableService(client),
		Menu:         service.NewMenuService(client),
		Policies:     service.NewPolicyService(client),
		Info:         service.NewInfoService(client),
		Orders:       service.NewOrderService(client),
		Store:        st,
		Syncer:       sync,
		Notifier:     notifier,
		QR:           service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		sync.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		cancel()
	}()

	log.Printf("Dashboard starting on %s (backend %s, poll %s)", cfg.ListenAddr, cfg.APIBaseURL, cfg.PollInterval)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("Server error:", err)
	}
}
