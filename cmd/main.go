package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk/internal/auth"
	"kiosk/internal/config"
	httpapi "kiosk/internal/http"
	"kiosk/internal/repository"
	"kiosk/internal/seed"
	"kiosk/internal/service"

	_ "kiosk/docs"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// storage is opened once here and injected; closed on shutdown
	var (
		products   repository.ProductRepository
		orders     repository.OrderRepository
		tx         repository.TxManager
		closeStore func() error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		store, err := repository.OpenSQLite(cfg.Database.DSN)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		products = store
		orders = repository.NewGormOrders(store)
		tx = store
		closeStore = store.Close
	default:
		store := repository.NewMemoryStore()
		products = store
		orders = repository.NewMemoryOrders(store)
		tx = repository.NewMemoryTx(store)
		closeStore = func() error { return nil }
	}

	if cfg.Seed {
		if err := seed.Ensure(context.Background(), products); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
	}

	catalogSvc := service.NewCatalogService(products)
	ordersSvc := service.NewOrderService(products, orders, tx)
	authn := auth.New(cfg.Auth.AdminUser, cfg.Auth.AdminPassword, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL())

	srv := httpapi.NewServer(catalogSvc, ordersSvc, authn)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if err := closeStore(); err != nil {
		log.Printf("close storage: %v", err)
	}
}
