package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Mongo
	MongoURL            string        // ex: "mongodb://localhost:27017"
	DBName              string        // database holding the resources collection
	MongoConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	MongoRetryInterval  time.Duration // initial wait between retries (ex: 2s, grows exponentially)
	MongoMaxWait        time.Duration // max wait between retries (ex: 10s)
	MongoPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	MongoWarnThreshold  int           // warn after this many attempts

	// CORS
	CORSOrigins []string // allowed origins, "*" = allow all

	// Import
	ImportMaxBytes int64 // max accepted upload size for bulk import

	// Redis list cache (optional, empty addr = disabled)
	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

func Load() *Config {
	// Best effort, matching the original dotenv behavior: a missing .env
	// file is fine, the environment wins either way.
	_ = godotenv.Load()

	return &Config{
		// Server settings
		ListenPort:      getenv("RESMAN_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("RESMAN_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("RESMAN_LOG_LEVEL", "info"),
		PrettyLog: mustBool("RESMAN_PRETTY_LOG", true),

		// Mongo settings
		MongoURL:            requireEnv("MONGO_URL"),
		DBName:              requireEnv("DB_NAME"),
		MongoConnectTimeout: mustDuration("MONGO_CONNECT_TIMEOUT", 30*time.Second),
		MongoRetryInterval:  mustDuration("MONGO_RETRY_INTERVAL", 2*time.Second),
		MongoMaxWait:        mustDuration("MONGO_MAX_WAIT", 10*time.Second),
		MongoPingTimeout:    mustDuration("MONGO_PING_TIMEOUT", 5*time.Second),
		MongoWarnThreshold:  getenvInt("MONGO_WARN_THRESHOLD", 3),

		// Cross-origin sources, comma-separated; defaults to allow all
		CORSOrigins: splitAndTrim(getenv("CORS_ORIGINS", "*")),

		// Import upload cap
		ImportMaxBytes: getenvInt64("RESMAN_IMPORT_MAX_BYTES", 10<<20),

		// Redis cache settings (optional)
		RedisAddr:     getenv("RESMAN_REDIS_ADDR", ""),
		RedisUser:     getenv("RESMAN_REDIS_USERNAME", ""),
		RedisPassword: getenv("RESMAN_REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("RESMAN_REDIS_DB", 0),
		CacheTTL:      mustDuration("RESMAN_CACHE_TTL", time.Minute),
	}
}

// CacheEnabled reports whether the optional Redis list cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
