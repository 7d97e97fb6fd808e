package config

import (
	"os"
	"strconv"
	"time"

	pstrings "panguard/pkg/platform/strings"
)

// Config aggregates runtime configuration for the validation service. Values
// come from the environment so main stays lean; every field has a workable
// default for local development.
type Config struct {
	Server    Server
	Auth      Auth
	Log       Log
	Redis     RedisConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	RateLimit RateLimit
	Audit     Audit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Auth configures how API clients authenticate.
type Auth struct {
	JWTSigningKey string
	// APIKeyHashes holds bcrypt hashes of accepted API keys, one per client.
	// Raw keys never appear in configuration.
	APIKeyHashes []string
	Disabled     bool
}

// Log configures the process logger.
type Log struct {
	Level  string
	Format string
}

// RedisConfig holds connection settings for the optional Redis backend used
// by the rate limiter. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds connection settings for the optional Postgres audit
// store. An empty DSN disables Postgres.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig holds settings for the optional Kafka audit sink. An empty
// broker list disables Kafka.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
}

// RateLimit bounds request volume per calling client.
type RateLimit struct {
	Disabled bool
	Requests int
	Window   time.Duration
}

// Audit configures the asynchronous audit pipeline.
type Audit struct {
	// Sink selects where events land: "memory", "postgres", or "kafka".
	Sink          string
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	jwtSigningKey := os.Getenv("PANGUARD_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Config{
		Server: Server{
			Addr:            envString("PANGUARD_ADDR", ":8080"),
			RequestTimeout:  envDuration("PANGUARD_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: envDuration("PANGUARD_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: Auth{
			JWTSigningKey: jwtSigningKey,
			APIKeyHashes:  pstrings.SplitAndTrim(os.Getenv("PANGUARD_API_KEY_HASHES"), ","),
			Disabled:      envBool("PANGUARD_AUTH_DISABLED"),
		},
		Log: Log{
			Level:  envString("PANGUARD_LOG_LEVEL", "info"),
			Format: envString("PANGUARD_LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("PANGUARD_REDIS_URL"),
			PoolSize:     envInt("PANGUARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("PANGUARD_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("PANGUARD_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("PANGUARD_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("PANGUARD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("PANGUARD_POSTGRES_DSN"),
			MaxOpenConns:    envInt("PANGUARD_POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("PANGUARD_POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("PANGUARD_POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:           pstrings.SplitAndTrim(os.Getenv("PANGUARD_KAFKA_BROKERS"), ","),
			Topic:             envString("PANGUARD_KAFKA_TOPIC", "panguard.audit.events"),
			Partitions:        int32(envInt("PANGUARD_KAFKA_PARTITIONS", 3)),
			ReplicationFactor: int16(envInt("PANGUARD_KAFKA_REPLICATION_FACTOR", 1)),
		},
		RateLimit: RateLimit{
			Disabled: envBool("PANGUARD_RATELIMIT_DISABLED"),
			Requests: envInt("PANGUARD_RATELIMIT_REQUESTS", 100),
			Window:   envDuration("PANGUARD_RATELIMIT_WINDOW", time.Minute),
		},
		Audit: Audit{
			Sink:          envString("PANGUARD_AUDIT_SINK", "memory"),
			BufferSize:    envInt("PANGUARD_AUDIT_BUFFER_SIZE", 1024),
			BatchSize:     envInt("PANGUARD_AUDIT_BATCH_SIZE", 64),
			FlushInterval: envDuration("PANGUARD_AUDIT_FLUSH_INTERVAL", 5*time.Second),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
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

func envBool(key string) bool {
	return os.Getenv(key) == "true"
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
