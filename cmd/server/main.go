package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopapi/internal/config"
	"shopapi/internal/es"
	"shopapi/internal/httpserver"
	"shopapi/internal/logging"
	loggingmw "shopapi/internal/middleware/logging"
	"shopapi/internal/mykafka"
	"shopapi/internal/repo"
	"shopapi/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	}

	gormRepo := &repo.GormRepo{DB: db}

	catalog := &service.CatalogService{Repo: gormRepo, Producer: producer, Index: "products"}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		catalog.ES = client
	}

	users := &service.UserService{Repo: gormRepo, Producer: producer}
	purchases := &service.PurchaseService{Repo: gormRepo, Producer: producer}
	auth := &service.AuthService{
		Repo:      gormRepo,
		Users:     users,
		JWTSecret: []byte(configuration.JWT_SECRET),
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:     &httpserver.AuthHandler{Svc: auth},
		UserHandler:     &httpserver.UserHandler{Svc: users},
		ProductHandler:  &httpserver.ProductHandler{Svc: catalog, UploadDir: configuration.UPLOAD_DIR},
		PurchaseHandler: &httpserver.PurchaseHandler{Svc: purchases},
		JWTSecret:       []byte(configuration.JWT_SECRET),
		UploadDir:       configuration.UPLOAD_DIR,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
