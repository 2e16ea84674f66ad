package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all runtime configuration. Loaded once at startup so main
// stays lean; nothing reads the environment after that.
type Config struct {
	Addr  string
	Auth  AuthConfig
	DB    DBConfig
	Redis RedisConfig
	Kafka KafkaConfig
}

// AuthConfig describes the fixed authorization policy and how to reach the
// external authorizer. The policy fields never change at runtime.
type AuthConfig struct {
	// BaseURL of the government gateway authorizer. Empty selects the
	// in-process development authorizer.
	BaseURL string

	EnrolmentKey       string
	IdentifierKey      string
	MinimumConfidence  int
	CredentialStrength string
	AffinityGroup      string

	// DevSigningKey verifies bearer tokens when the development authorizer
	// is active. Ignored when BaseURL is set.
	DevSigningKey string
}

// DBConfig holds PostgreSQL settings. An empty URL selects in-memory stores.
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis connection settings. An empty URL disables the
// obligations cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds audit sink settings. No brokers means audit events stay
// in the in-memory store.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Addr: envOr("TAXGATE_ADDR", ":8080"),
		Auth: AuthConfig{
			BaseURL:            os.Getenv("AUTH_BASE_URL"),
			EnrolmentKey:       envOr("AUTH_ENROLMENT_KEY", "HMRC-MTD-VAT"),
			IdentifierKey:      envOr("AUTH_IDENTIFIER_KEY", "VRN"),
			MinimumConfidence:  envIntOr("AUTH_MIN_CONFIDENCE", 250),
			CredentialStrength: envOr("AUTH_CREDENTIAL_STRENGTH", "strong"),
			AffinityGroup:      envOr("AUTH_AFFINITY_GROUP", "Organisation"),
			DevSigningKey:      envOr("AUTH_DEV_SIGNING_KEY", "dev-secret-key-change-in-production"),
		},
		DB: DBConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "taxgate.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
