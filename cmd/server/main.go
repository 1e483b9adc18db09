package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lavibaby/shop/internal/cart"
	"github.com/lavibaby/shop/internal/catalog"
	"github.com/lavibaby/shop/internal/cep"
	"github.com/lavibaby/shop/internal/checkout"
	"github.com/lavibaby/shop/internal/config"
	"github.com/lavibaby/shop/internal/es"
	"github.com/lavibaby/shop/internal/events"
	"github.com/lavibaby/shop/internal/handlers"
	"github.com/lavibaby/shop/internal/logging"
	"github.com/lavibaby/shop/internal/middleware/csrf"
	"github.com/lavibaby/shop/internal/payment"
	"github.com/lavibaby/shop/internal/service/token"
	httpserver "github.com/lavibaby/shop/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	store, err := catalog.New(db, logger)
	if err != nil {
		log.Fatalf("catalog init: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}

	jwtSecret := []byte(cfg.JWT_SECRET)
	refreshSecret := []byte(cfg.REFRESH_SECRET)
	tokenSvc := &token.Service{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}

	sessions := cart.NewSessions()
	notifier := events.NewNotifier()
	gateway := payment.NewGateway()

	deps := &httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			DB:            db,
			JWTSecret:     jwtSecret,
			RefreshSecret: refreshSecret,
			Producer:      producer,
			Notifier:      notifier,
			Sessions:      sessions,
		},
		ProductHandler:  &handlers.ProductHandler{Catalog: store, Producer: producer},
		CartHandler:     &handlers.CartHandler{Sessions: sessions, Catalog: store, Producer: producer},
		CheckoutHandler: &handlers.CheckoutHandler{Sessions: sessions, Service: checkout.NewService(db, gateway, producer, logger)},
		CEPHandler:      &handlers.CEPHandler{Client: cep.NewClient()},
		TokenService:    tokenSvc,
		CSRF: &csrf.Config{
			Secure:    true,
			SkipPaths: []string{"/api/v1/register", "/api/v1/login"},
		},
	}

	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "err", err)
		}
	} else {
		logger.Error("db handle error", "err", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("producer close error", "err", err)
	}

	logger.Info("shutdown complete")
}
