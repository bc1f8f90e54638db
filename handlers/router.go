package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"silentsos-server/middleware"
	"silentsos-server/services"
)

type RouterConfig struct {
	AuthService  *services.AuthService
	UserService  *services.UserService
	SOSService   *services.SOSService
	AlertService *services.AlertService

	Logger         *zap.Logger
	AllowedOrigins []string
	AuthRateLimit  int
	StaticDir      string
	// Served at /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(cfg RouterConfig) *mux.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	authHandler := NewAuthHandler(cfg.AuthService)
	userHandler := NewUserHandler(cfg.UserService)
	sosHandler := NewSOSHandler(cfg.SOSService, cfg.AlertService)

	r := mux.NewRouter()
	r.Use(middleware.ErrorMiddleware())
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler).Methods("GET")
	}

	// Auth routes
	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.Use(middleware.AuthRateLimitMiddleware(cfg.AuthRateLimit))
	authRouter.HandleFunc("/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Everything else under /api requires a session
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.AuthService))
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	api.HandleFunc("/profile", userHandler.GetProfile).Methods("GET", "OPTIONS")
	api.HandleFunc("/profile", userHandler.UpdateProfile).Methods("PUT", "OPTIONS")

	api.HandleFunc("/contacts", userHandler.ListContacts).Methods("GET", "OPTIONS")
	api.HandleFunc("/contacts", userHandler.CreateContact).Methods("POST", "OPTIONS")
	api.HandleFunc("/contacts/{id}", userHandler.UpdateContact).Methods("PUT", "OPTIONS")
	api.HandleFunc("/contacts/{id}", userHandler.DeleteContact).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/safe-words", userHandler.ListSafeWords).Methods("GET", "OPTIONS")
	api.HandleFunc("/safe-words", userHandler.CreateSafeWord).Methods("POST", "OPTIONS")
	api.HandleFunc("/safe-words/{id}", userHandler.UpdateSafeWord).Methods("PUT", "OPTIONS")
	api.HandleFunc("/safe-words/{id}", userHandler.DeleteSafeWord).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/settings", userHandler.GetSettings).Methods("GET", "OPTIONS")
	api.HandleFunc("/settings", userHandler.UpdateSettings).Methods("PUT", "OPTIONS")

	api.HandleFunc("/location", userHandler.UpdateLocation).Methods("POST", "OPTIONS")

	api.HandleFunc("/sos", sosHandler.Dispatch).Methods("POST", "OPTIONS")
	api.HandleFunc("/alerts", sosHandler.Alerts).Methods("GET", "OPTIONS")
	api.HandleFunc("/history", sosHandler.History).Methods("GET", "OPTIONS")

	api.PathPrefix("/").HandlerFunc(apiNotFound)

	r.PathPrefix("/").Handler(spaHandler{dir: cfg.StaticDir})
	return r
}
