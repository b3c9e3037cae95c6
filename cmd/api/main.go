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

	_ "agrimarket/api/swagger" // swagger docs
	"agrimarket/internal/config"
	"agrimarket/internal/database"
	"agrimarket/internal/handler"
	"agrimarket/internal/limiter"
	"agrimarket/internal/logger"
	"agrimarket/internal/middleware"
	"agrimarket/internal/queue"
	"agrimarket/internal/repository"
	"agrimarket/internal/service"
	"agrimarket/internal/tavily"
	"agrimarket/internal/token"
	"agrimarket/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Supply Chain Management API
// @version         1.0
// @description     Role-based marketplace backend for farmers, mandi owners and retailers.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	zl, err := logger.New(cfg.IsDev())
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.DSN(), zl)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	zl.Info("connected to PostgreSQL")

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		zl.Warn("redis unavailable: rate limiting, response cache and token denylist disabled, login lockout is per process")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	// Realtime alerts
	wsHub := websocket.NewHub(zl)
	go wsHub.Run(ctx)

	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.AccessTTL)
	policy := limiter.Policy{MaxFailures: cfg.Login.MaxFailures, Window: cfg.Login.Window, BlockFor: cfg.Login.BlockFor}
	var (
		loginLimiter limiter.Limiter
		denylist     token.Denylist
	)
	if rdb != nil {
		loginLimiter = limiter.NewRedis(rdb, policy)
		denylist = token.NewDenylist(rdb)
	} else {
		loginLimiter = limiter.NewMemory(policy)
		denylist = token.NopDenylist{}
	}

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	alertService := service.NewAlertService(alertRepo, wsHub, zl)

	var events queue.Publisher
	if cfg.RabbitMQURL != "" {
		amqpPub := queue.NewAMQPPublisher(cfg.RabbitMQURL, zl)
		defer func() { _ = amqpPub.Close() }()
		events = amqpPub
		go queue.Consume(ctx, cfg.RabbitMQURL, queue.UserRegisteredQueue, alertService.HandleUserRegistered, zl)
		go queue.Consume(ctx, cfg.RabbitMQURL, queue.LowStockQueue, alertService.HandleLowStock, zl)
	} else {
		direct := queue.NewDirect(zl)
		direct.Subscribe(queue.UserRegisteredQueue, alertService.HandleUserRegistered)
		direct.Subscribe(queue.LowStockQueue, alertService.HandleLowStock)
		events = direct
	}

	authService, err := service.NewAuthService(
		userRepo, profileRepo, refreshRepo, auditRepo, txManager,
		tokens, denylist, loginLimiter, events,
		service.AuthConfig{BcryptCost: cfg.BcryptCost, RefreshTTL: cfg.RefreshTTL},
		zl,
	)
	if err != nil {
		zl.Fatal("auth service init failed", zap.Error(err))
	}
	userService := service.NewUserService(userRepo, profileRepo, auditRepo, txManager)
	inventoryService := service.NewInventoryService(itemRepo, profileRepo, auditRepo, txManager, events, zl)
	orderService := service.NewOrderService(orderRepo, profileRepo, auditRepo, txManager)
	statisticsService := service.NewStatisticsService(statsRepo, profileRepo)
	auditService := service.NewAuditService(auditRepo)
	mandiService := service.NewMandiService(nil, nil)

	var searcher service.Searcher
	if cfg.TavilyAPIKey != "" {
		searcher = tavily.NewClient(cfg.TavilyAPIKey)
	} else {
		zl.Warn("TAVILY_API_KEY not set: weather and market endpoints return fallback data")
	}
	weatherService := service.NewWeatherService(searcher, zl)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService, tokens, denylist, handler.CookieConfig{
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		Secure:     !cfg.IsDev(),
	})
	userHandler := handler.NewUserHandler(userService, tokens, denylist)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, tokens, denylist)
	orderHandler := handler.NewOrderHandler(orderService, tokens, denylist)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, tokens, denylist)
	farmerHandler := handler.NewFarmerHandler(mandiService, weatherService, middleware.ResponseCache(cfg.Cache, rdb))
	alertHandler := handler.NewAlertHandler(alertService, tokens, denylist)
	auditHandler := handler.NewAuditHandler(auditService, tokens, denylist)

	// Set up Gin Router
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.Logging(zl), middleware.Recover(zl))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-Cache"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.TokenBucket(cfg.RateLimit, rdb, zl))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, tokens, denylist, c)
	})

	handler.NewHealthHandler().RegisterRoutes(router)

	// API Routing
	api := router.Group("/api")
	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	inventoryHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	statisticsHandler.RegisterRoutes(api)
	farmerHandler.RegisterRoutes(api)
	alertHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	// Unprefixed aliases kept for older clients
	authHandler.RegisterAliases(router)
	inventoryHandler.RegisterAliases(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
