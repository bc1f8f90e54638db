package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreMongo  = "mongo"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	Env  string
	Port int

	StoreBackend string
	DataFile     string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	JWTSecret string

	AllowedOrigins []string
	StaticDir      string

	// Requests per minute per IP on /api/auth routes; 0 disables the limit.
	AuthRateLimit int

	NearbyRadiusMiles float64

	LogLevel  string
	LogFormat string
}

// Load reads a .env file if one exists, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("APP_ENV", "production"),
		StoreBackend:    getEnv("STORE_BACKEND", StoreFile),
		DataFile:        getEnv("DATA_FILE", "data.json"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "silentsos"),
		MongoCollection: getEnv("MONGODB_COLLECTION", "documents"),
		SessionBackend:  getEnv("SESSION_BACKEND", SessionMemory),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
		StaticDir:       getEnv("STATIC_DIR", "dist"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 4000); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = getInt("AUTH_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.NearbyRadiusMiles, err = getFloat("NEARBY_RADIUS_MILES", 1.0); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" && cfg.Env == "development" {
		cfg.JWTSecret, err = randomSecret()
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE must be set for the file store")
		}
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI must be set for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.SessionBackend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.AuthRateLimit < 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must not be negative")
	}
	if c.NearbyRadiusMiles <= 0 {
		return fmt.Errorf("NEARBY_RADIUS_MILES must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
