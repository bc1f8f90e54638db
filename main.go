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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"silentsos-server/config"
	"silentsos-server/handlers"
	"silentsos-server/logger"
	"silentsos-server/metrics"
	"silentsos-server/middleware"
	"silentsos-server/services"
	"silentsos-server/sessions"
	"silentsos-server/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "silentsos")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()
	middleware.SetLogger(l)

	ctx := context.Background()

	// Storage
	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to initialise store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeBackend()
	st := store.New(backend, l)

	// Sessions
	sessionStore, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to initialise session store", zap.String("backend", cfg.SessionBackend), zap.Error(err))
	}
	defer closeSessions()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize services and handlers
	authService := services.NewAuthService(st, sessionStore, sessions.NewTokenIssuer(cfg.JWTSecret), m, l)
	userService := services.NewUserService(st, l)
	geoService := services.NewGeoService(cfg.NearbyRadiusMiles)
	sosService := services.NewSOSService(st, geoService, m, l)
	alertService := services.NewAlertService(st, m, l)

	r := handlers.NewRouter(handlers.RouterConfig{
		AuthService:    authService,
		UserService:    userService,
		SOSService:     sosService,
		AlertService:   alertService,
		Logger:         l,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthRateLimit:  cfg.AuthRateLimit,
		StaticDir:      cfg.StaticDir,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreBackend),
			zap.String("sessions", cfg.SessionBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Graceful shutdown failed", zap.Error(err))
	}
	l.Info("Server stopped")
}

func newBackend(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewMemoryBackend(), func() {}, nil
	case config.StoreMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		b, err := store.NewMongoBackend(connectCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close(context.Background()) }, nil
	default:
		return store.NewFileBackend(cfg.DataFile), func() {}, nil
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, func(), error) {
	if cfg.SessionBackend != config.SessionRedis {
		return sessions.NewMemoryStore(), func() {}, nil
	}
	client, err := sessions.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return sessions.NewRedisStore(client), func() { client.Close() }, nil
}
