package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barbershop-web/cache"
	"barbershop-web/config"
	"barbershop-web/controllers"
	"barbershop-web/models"
	"barbershop-web/routes"
	"barbershop-web/services"
	"barbershop-web/session"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := config.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("failed to set up tracing", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown error", sl.Err(err))
		}
	}()

	var db *gorm.DB
	if cfg.Database.URL != "" {
		db, err = config.ConnectDB(cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", sl.Err(err))
			os.Exit(1)
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", slog.String("addr", cfg.Redis.Addr), sl.Err(err))
			os.Exit(1)
		}
	}

	store, err := sessionStore(cfg, db, rdb)
	if err != nil {
		logger.Error("failed to set up session store", sl.Err(err))
		os.Exit(1)
	}
	sessions := session.NewManager(store, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secret:     cfg.Session.Secret,
		Secure:     cfg.IsProduction(),
	}, logger)

	var weatherCache cache.Cache = cache.NewMemoryCache()
	if rdb != nil {
		weatherCache = cache.NewRedisCache(rdb, cfg.Redis.KeyPrefix)
	}

	api := services.NewAPIClient(cfg.APIBaseURL, cfg.APITimeout, nil)
	deps := controllers.Deps{
		API:      api,
		Sessions: sessions,
		Weather:  services.NewWeatherService(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.City, cfg.Weather.CacheTTL, weatherCache, logger),
		Log:      logger,
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Session.PurgeSchedule, func() {
		n, err := sessions.PurgeExpired(context.Background())
		if err != nil {
			logger.Error("session purge failed", sl.Err(err))
			return
		}
		logger.Debug("expired sessions purged", slog.Int64("count", n))
	}); err != nil {
		logger.Error("invalid session purge schedule", slog.String("spec", cfg.Session.PurgeSchedule), sl.Err(err))
		os.Exit(1)
	}
	if cfg.Twilio.Enabled() {
		sender := services.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.PhoneNumber)
		reminders := services.NewReminderService(db, api.WithRole(models.RoleAdmin), sender, logger)
		if err := reminders.Schedule(scheduler, cfg.Twilio.Schedule); err != nil {
			logger.Error("failed to schedule barber reminders", sl.Err(err))
			os.Exit(1)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := routes.SetupRouter(deps, routes.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		TrustedProxies:     cfg.TrustedProxies,
		Redis:              rdb,
		RedisPrefix:        cfg.Redis.KeyPrefix,
	})
	printRoutes(logger, r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "barbershop-web"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", slog.String("addr", srv.Addr), slog.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", sl.Err(err))
	}
	logger.Info("http server stopped")
}

func sessionStore(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendPostgres:
		if db == nil {
			return nil, errors.New("postgres session backend needs DB_URL")
		}
		return session.NewGormStore(db), nil
	case config.SessionBackendRedis:
		if rdb == nil {
			return nil, errors.New("redis session backend needs REDIS_ADDR")
		}
		return session.NewRedisStore(rdb, cfg.Redis.KeyPrefix), nil
	}
	return session.NewMemoryStore(), nil
}

func printRoutes(log *slog.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debug("route", slog.String("method", route.Method), slog.String("path", route.Path))
	}
}
