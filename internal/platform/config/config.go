package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "cayley/pkg/platform/strings"
)

// Store backends accepted by CAYLEY_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	StoreBackend    string
	DatabaseURL     string
	Redis           RedisConfig
	CacheTTL        time.Duration
	SeedCatalog     bool
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	CORSOrigins     []string
}

// RedisConfig holds connection settings for the group cache. An empty URL
// disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Consecutive cache failures before Redis is bypassed, and how long it
	// stays bypassed.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	store := strings.ToLower(envOr("CAYLEY_STORE", StoreMemory))
	dbURL := os.Getenv("DATABASE_URL")
	if store == StoreMemory && dbURL != "" && os.Getenv("CAYLEY_STORE") == "" {
		store = StorePostgres
	}

	return Server{
		Addr:         envOr("CAYLEY_ADDR", ":8080"),
		LogLevel:     envOr("CAYLEY_LOG_LEVEL", "info"),
		LogFormat:    envOr("CAYLEY_LOG_FORMAT", "json"),
		StoreBackend: store,
		DatabaseURL:  dbURL,
		Redis: RedisConfig{
			URL:              os.Getenv("REDIS_URL"),
			PoolSize:         envInt("CAYLEY_REDIS_POOL_SIZE", 10),
			MinIdleConns:     envInt("CAYLEY_REDIS_MIN_IDLE", 2),
			DialTimeout:      envDuration("CAYLEY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:      envDuration("CAYLEY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:     envDuration("CAYLEY_REDIS_WRITE_TIMEOUT", 3*time.Second),
			BreakerThreshold: envInt("CAYLEY_CACHE_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  envDuration("CAYLEY_CACHE_BREAKER_COOLDOWN", 30*time.Second),
		},
		CacheTTL:        envDuration("CAYLEY_CACHE_TTL", 10*time.Minute),
		SeedCatalog:     envBool("CAYLEY_SEED", true),
		ShutdownTimeout: envDuration("CAYLEY_SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:  envDuration("CAYLEY_REQUEST_TIMEOUT", 30*time.Second),
		CORSOrigins:     envList("CAYLEY_CORS_ORIGINS", []string{"*"}),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// envDuration accepts Go duration strings ("30s", "5m").
func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	if out := pstrings.SplitList(os.Getenv(key)); len(out) > 0 {
		return out
	}
	return fallback
}
