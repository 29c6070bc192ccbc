package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/apperrors"
	"storefront-service/clients"
	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/events"
	"storefront-service/logger"
	"storefront-service/notifier"
	"storefront-service/routes"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	backend := clients.NewBackendClient(cfg.BackendURL, cfg.RequestTimeout)

	// Redis is optional: without it the session store degrades to a no-op and
	// the selected sucursal no longer survives restarts.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		logger.Log.Info("connected to Redis")
	}
	store := session.NewStore(redisClient, cfg.SessionTTL)

	svcBackend := services.Backend{
		Cart:     backend,
		Catalog:  backend,
		Promos:   backend,
		Sucursal: backend,
		Users:    backend,
		Pedidos:  backend,
	}

	// Kafka is optional too: checkout works without the audit event.
	if cfg.KafkaBrokers != "" {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		svcBackend.CheckoutN = producer
		logger.Log.Info("kafka producer enabled")
	}

	registry := services.NewRegistry(svcBackend, logger.Log)
	subscriber := notifier.NewSubscriber(cfg.BackendWSURL, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())

	ctrl := routes.Controllers{
		Session:  controllers.NewSessionController(registry, store, logger.Log),
		Sucursal: controllers.NewSucursalController(store, logger.Log),
		Catalog:  controllers.NewCatalogController(backend, logger.Log),
		Cart:     controllers.NewCartController(logger.Log),
		Checkout: controllers.NewCheckoutController(logger.Log),
		Pedido:   controllers.NewPedidoController(backend, subscriber, logger.Log),
		Admin:    controllers.NewAdminController(backend, logger.Log),
	}
	routes.RegisterRoutes(r, registry, ctrl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("storefront service listening on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown error: " + err.Error())
	}
}
