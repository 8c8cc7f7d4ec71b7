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

	"hostel-meal-management/config"
	controller "hostel-meal-management/controllers"
	"hostel-meal-management/database"
	"hostel-meal-management/payment"
	"hostel-meal-management/routes"
	"hostel-meal-management/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("service=hostel msg=%q err=%v", "invalid_config", err)
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("service=hostel msg=%q err=%v", "mongo_unavailable", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("service=hostel msg=%q err=%v", "mongo_disconnect_error", err)
		}
	}()

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("service=hostel msg=%q err=%v", "index_setup_failed", err)
	}

	opts := []controller.Option{
		controller.WithTimeout(cfg.RequestTimeout),
		controller.WithTokens(cfg.TokenSecret, cfg.TokenTTL),
	}
	if cfg.StripeKey != "" {
		opts = append(opts, controller.WithPaymentIntents(payment.NewStripe(cfg.StripeKey, cfg.Currency)))
	} else {
		log.Printf("service=hostel msg=%q", "payments_disabled")
	}
	if cfg.Minio.Enabled() {
		images, err := storage.NewImageStore(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.PublicURL)
		if err != nil {
			log.Fatalf("service=hostel msg=%q err=%v", "image_store_unavailable", err)
		}
		opts = append(opts, controller.WithImages(images))
	} else {
		log.Printf("service=hostel msg=%q", "image_uploads_disabled")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := controller.New(db, opts...)
	router := routes.Setup(h, cfg.TokenSecret, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=hostel msg=%q addr=%s", "listening", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("service=hostel msg=%q signal=%s", "shutting_down", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("service=hostel msg=%q err=%v", "shutdown_error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("service=hostel msg=%q err=%v", "server_error", err)
		}
	}
}
