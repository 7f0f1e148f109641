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

	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cache"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/cart"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/catalog"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/config"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/notification"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/service"
	"github.com/Muhammad-Hamza-Khan-03/quill-web/internal/web"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	cacheStore, cleanupCache := buildCache(cfg)
	defer cleanupCache()

	client := catalog.NewClient(cfg.CatalogBaseURL, cfg.RequestTimeout)
	productService := service.NewProductService(client, cacheStore)
	categoryService := service.NewCategoryService(client, cacheStore)
	reviewService := service.NewReviewService(client)

	sessions := cart.NewManager(cfg.SessionTTL)
	defer sessions.Close()

	hub := notification.NewHub()
	sessions.OnEvent(hub.CartEvent)
	sessions.OnEvict(hub.Drop)

	if len(cfg.KafkaBrokers) > 0 {
		publisher := notification.NewActivityPublisher(cfg.KafkaBrokers...)
		defer publisher.Close()
		sessions.OnEvent(publisher.CartEvent)
		log.Printf("cart activity publishing enabled (brokers: %v)", cfg.KafkaBrokers)
	}

	router := web.NewRouter(web.RouterConfig{
		Catalog:      web.NewCatalogHandler(productService, categoryService, cfg.RequestTimeout),
		Reviews:      web.NewReviewHandler(reviewService, cfg.RequestTimeout),
		Cart:         web.NewCartHandler(sessions, hub),
		NewSessionID: sessions.NewSessionID,
		Timeout:      cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on :%s (catalog: %s)", cfg.HTTPPort, cfg.CatalogBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func buildCache(cfg *config.Config) (cache.Store, func()) {
	if cfg.CacheBackend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		log.Printf("catalog cache backed by redis at %s", cfg.RedisAddr)

		store := cache.NewRedisStore(client, cfg.CacheTTL)
		return store, func() {
			_ = store.Close()
			_ = client.Close()
		}
	}

	store := cache.NewMemoryStore(cfg.CacheTTL)
	return store, func() { _ = store.Close() }
}
