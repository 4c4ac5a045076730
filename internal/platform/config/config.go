package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr string

	// DatabaseURL is a pgx connection string. When empty the process
	// runs on in-memory stores, which is only useful for local work.
	DatabaseURL string

	Redis RedisConfig

	// NationalIDTypeName selects which identifier type gets the
	// national ID normalization pre-pass.
	NationalIDTypeName string

	// AdminTokenHash is the bcrypt hash of the admin token. Admin
	// routes reject everything when it is empty.
	AdminTokenHash string

	JWTSigningKey string

	DefaultLocale string

	// TypeCacheTTL bounds how stale a cached identifier type may be.
	TypeCacheTTL time.Duration
}

// RedisConfig carries connection tuning for the type catalog cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CLINID_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	nationalType := os.Getenv("CLINID_NATIONAL_ID_TYPE")
	if nationalType == "" {
		nationalType = "CPF"
	}

	locale := os.Getenv("CLINID_DEFAULT_LOCALE")
	if locale == "" {
		locale = "en"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:               addr,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Redis:              redisFromEnv(),
		NationalIDTypeName: nationalType,
		AdminTokenHash:     os.Getenv("ADMIN_TOKEN_HASH"),
		JWTSigningKey:      jwtSigningKey,
		DefaultLocale:      locale,
		TypeCacheTTL:       durationEnv("CLINID_TYPE_CACHE_TTL", 5*time.Minute),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
		MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
