package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketplace-api/controllers"
	"marketplace-api/database"
	"marketplace-api/pkg/logger"
	"marketplace-api/repository"
	"marketplace-api/routes"
	"marketplace-api/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := database.DisconnectMongo(shutdownCtx, mongoClient); err != nil {
			log.Warn("Mongo disconnect failed", zap.Error(err))
		}
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	// Redis is optional; without it product listing just skips the cache.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("Redis unavailable, product cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	cache := services.NewProductCache(redisClient, cfg.CacheTTL, log)

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services.
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(userRepo, tokenService, log)
	storeService := services.NewStoreService(storeRepo, userRepo, log)
	productService := services.NewProductService(productRepo, storeRepo, categoryRepo, cache, log)
	categoryService := services.NewCategoryService(categoryRepo, log)
	cartService := services.NewCartService(cartRepo, productRepo, log)
	couponService := services.NewCouponService(couponRepo, storeRepo, log)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, couponRepo, storeRepo, cfg.TaxRate, cfg.ShippingFee, log)

	// Controllers.
	ctrl := routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Store:   controllers.NewStoreController(storeService, productService),
		Product: controllers.NewProductController(productService),
		Cart:    controllers.NewCartController(cartService),
		Coupon:  controllers.NewCouponController(couponService, cartService),
		Order:   controllers.NewOrderController(orderService),
		Admin:   controllers.NewAdminController(storeService, categoryService),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(r, ctrl, tokenService, userRepo)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
