package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	analyticsapp "github.com/vendorhub/backend/internal/application/analytics"
	catalogapp "github.com/vendorhub/backend/internal/application/catalog"
	identityapp "github.com/vendorhub/backend/internal/application/identity"
	ledgerapp "github.com/vendorhub/backend/internal/application/ledger"
	profileapp "github.com/vendorhub/backend/internal/application/profile"
	"github.com/vendorhub/backend/internal/domain/analytics"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/event"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/notification"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/infrastructure/scheduler"
	"github.com/vendorhub/backend/internal/infrastructure/storage"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
	"github.com/vendorhub/backend/internal/interfaces/http/router"

	_ "github.com/vendorhub/backend/docs"
)

//	@title			VendorHub API
//	@version		1.0
//	@description	Marketplace backend connecting vendors with suppliers

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting VendorHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)
	meter := meterProvider.Meter("vendorhub")

	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdown(log, "logger provider", logsProvider.Shutdown)
	log = logsProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:              cfg.Profiling.Enabled,
		ServerAddress:        cfg.Profiling.ServerAddress,
		ApplicationName:      cfg.Profiling.ApplicationName,
		BasicAuthUser:        cfg.Profiling.BasicAuthUser,
		BasicAuthPassword:    cfg.Profiling.BasicAuthPassword,
		ProfileTypes:         cfg.Profiling.ProfileTypes,
		MutexProfileFraction: cfg.Profiling.MutexProfileFraction,
		BlockProfileRate:     cfg.Profiling.BlockProfileRate,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer shutdown(log, "profiler", func(context.Context) error { return profiler.Stop() })
	if cfg.Profiling.SpanProfiles && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        cfg.Database.Driver,
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	repos := persistence.NewRepositories(db.DB)

	var (
		redisClient *redis.Client
		blacklist   auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
		scopeOpts   []persistence.TransactionScopeOption
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	if cfg.OrderSequence.Backend == "redis" {
		seq, err := newRedisOrderSequence(ctx, redisClient, repos.Orders, cfg.OrderSequence.RedisKey)
		if err != nil {
			log.Fatal("Failed to prepare order sequence", zap.Error(err))
		}
		scopeOpts = append(scopeOpts, persistence.WithOrderSequence(seq))
	} else {
		highest, err := persistence.NewGormOrderSequence(db.DB, persistence.DefaultOrderSequence).SeedFromOrders(ctx, repos.Orders)
		if err != nil {
			log.Fatal("Failed to prepare order sequence", zap.Error(err))
		}
		log.Info("Order sequence seeded", zap.Int64("floor", highest))
	}
	scope := persistence.NewGormTransactionScope(db.DB, scopeOpts...)

	series, err := newRevenueSeries(cfg.Analytics, repos.SharedOrders)
	if err != nil {
		log.Fatal("Invalid analytics configuration", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(scope, repos.Accounts, repos.Vendors, repos.Suppliers, jwtService, blacklist, log)
	profileService := profileapp.NewProfileService(scope, repos.Accounts, repos.Vendors, repos.Suppliers, log)
	catalogService := catalogapp.NewCatalogService(scope, repos.Products, repos.Inventory, repos.Suppliers, log)
	ledgerService := ledgerapp.NewLedgerService(scope, repos.Accounts, repos.Vendors, repos.Orders, repos.SharedOrders, log)
	analyticsService := analyticsapp.NewAnalyticsService(
		repos.Inventory, repos.SharedOrders, repos.Suppliers, repos.Snapshots, series, cfg.Analytics.CacheMaxAge, log,
	)

	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())

	refreshHandler := analyticsapp.NewRefreshHandler(analyticsService, log)
	eventBus.Subscribe(refreshHandler)

	businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	eventBus.Subscribe(businessMetrics)

	if cfg.Notification.Enabled {
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.Storage)
		if err != nil {
			log.Fatal("Failed to load AWS configuration", zap.Error(err))
		}
		notifier := notification.NewOrderNotifier(
			notification.NewSNSClient(awsCfg), cfg.Notification.TopicARN, event.NewEventSerializer(), log,
		)
		eventBus.Subscribe(notifier)
		log.Info("Order notifications enabled", zap.String("topic_arn", cfg.Notification.TopicARN))
	}

	log.Info("Event handlers registered",
		zap.Strings("analytics_refresh_events", refreshHandler.EventTypes()),
		zap.Strings("business_metric_events", businessMetrics.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer shutdown(log, "event bus", eventBus.Stop)

	catalogService.SetEventPublisher(eventBus)
	ledgerService.SetEventPublisher(eventBus)

	refreshScheduler := scheduler.NewAnalyticsRefreshScheduler(analyticsService, log, scheduler.AnalyticsRefreshConfig{
		Enabled:    cfg.Scheduler.Enabled,
		Interval:   cfg.Scheduler.AnalyticsRefreshInterval,
		JobTimeout: cfg.Scheduler.JobTimeout,
		RunOnStart: true,
	})
	if err := refreshScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start analytics scheduler", zap.Error(err))
	}
	defer shutdown(log, "analytics scheduler", refreshScheduler.Stop)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.ProfilingLabels(middleware.ProfilingConfig{
			Enabled:          profiler.IsEnabled(),
			SkipPathPrefixes: []string{"/health", "/swagger"},
		}),
		httpMetrics,
	)

	var apiLimiter, authLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		apiLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer apiLimiter.Stop()
		engine.Use(middleware.RateLimit(apiLimiter))
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
	}

	checks := map[string]handler.Pinger{
		"database": handler.PingFunc(func(context.Context) error { return db.Ping() }),
	}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router.RegisterAPI(engine, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Profile:   handler.NewProfileHandler(profileService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Ledger:    handler.NewLedgerHandler(ledgerService),
		Dashboard: handler.NewDashboardHandler(analyticsService),
		Health:    handler.NewHealthHandler(version, checks),
	}, router.Options{
		JWT: middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		AuthLimiter:    authLimiter,
		SwaggerEnabled: cfg.Swagger.Enabled,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// newRedisOrderSequence raises the Redis counter past every stored order
// number before handing it out.
func newRedisOrderSequence(ctx context.Context, client *redis.Client, orders *persistence.GormOrderRepository, key string) (*cache.RedisOrderSequence, error) {
	if client == nil {
		return nil, errors.New("order_sequence.backend redis requires redis.enabled")
	}
	highest, err := orders.HighestSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("read highest order number: %w", err)
	}
	seq := cache.NewRedisOrderSequence(client, key)
	if _, err := seq.Seed(ctx, highest); err != nil {
		return nil, fmt.Errorf("seed order sequence: %w", err)
	}
	return seq, nil
}

func newRevenueSeries(cfg config.AnalyticsConfig, orders *persistence.GormSharedOrderRepository) (analytics.RevenueSeriesSource, error) {
	if cfg.RevenueChart == "monthly" {
		return analytics.NewMonthlyRevenueSeries(orders, cfg.MonthlyWindow), nil
	}
	data := make([]decimal.Decimal, 0, len(cfg.StaticData))
	for _, raw := range cfg.StaticData {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("analytics.static_data %q: %w", raw, err)
		}
		data = append(data, d)
	}
	static, err := analytics.NewStaticRevenueSeries(cfg.StaticLabels, data)
	if err != nil {
		return nil, err
	}
	return static, nil
}

func shutdown(log *zap.Logger, name string, stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stop(ctx); err != nil {
		log.Error("Error stopping "+name, zap.Error(err))
	}
}
