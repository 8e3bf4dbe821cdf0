package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings for the order store.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Redis stores draft store (key-value) settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
	DraftTTL time.Duration
}

// Kafka stores the order status feed settings. Empty brokers disable the worker consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Geocode stores the address search gateway settings.
type Geocode struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Booking stores business-layer settings.
type Booking struct {
	OperationTimeout time.Duration
}

// Pprof stores profiler endpoint settings. Empty credentials restrict the
// profiler to loopback.
type Pprof struct {
	Enabled bool
	Port    int
	User    string
	Pass    string
}

// Config stores all service settings.
type Config struct {
	Port      int
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Geocode   Geocode
	RateLimit RateLimit
	Booking   Booking
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      DefaultPort(),
		DB:        DefaultDB(),
		Redis:     DefaultRedis(),
		Kafka:     DefaultKafka(),
		Geocode:   DefaultGeocode(),
		RateLimit: DefaultRateLimit(),
		Booking:   DefaultBooking(),
		Pprof:     DefaultPprof(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	readString(&cfg.DB.Host, "POSTGRES_HOST")
	readString(&cfg.DB.User, "POSTGRES_USER")
	readString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	readString(&cfg.DB.Name, "POSTGRES_DB")
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid POSTGRES_PORT: %q", v)
		}
		cfg.DB.Port = v
	}

	readString(&cfg.Redis.Addr, "REDIS_ADDR")
	readString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB: %q", v)
		}
		cfg.Redis.DB = n
	}
	if err := readDuration(&cfg.Redis.DraftTTL, "REDIS_DRAFT_TTL"); err != nil {
		return nil, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	readString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	readString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	readString(&cfg.Geocode.BaseURL, "GEOCODE_BASE_URL")
	if v := os.Getenv("GEOCODE_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid GEOCODE_MAX_ATTEMPTS: %q", v)
		}
		cfg.Geocode.MaxAttempts = n
	}
	if err := readDuration(&cfg.Geocode.BaseDelay, "GEOCODE_BASE_DELAY"); err != nil {
		return nil, err
	}
	if err := readDuration(&cfg.Geocode.MaxDelay, "GEOCODE_MAX_DELAY"); err != nil {
		return nil, err
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED: %q", v)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RATE: %q", v)
		}
		cfg.RateLimit.Rate = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %q", v)
		}
		cfg.RateLimit.Burst = n
	}

	if err := readDuration(&cfg.Booking.OperationTimeout, "BOOKING_OPERATION_TIMEOUT"); err != nil {
		return nil, err
	}

	if v := os.Getenv("PPROF_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PPROF_ENABLED: %q", v)
		}
		cfg.Pprof.Enabled = b
	}
	if v := os.Getenv("PPROF_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("invalid PPROF_PORT: %q", v)
		}
		cfg.Pprof.Port = p
	}
	readString(&cfg.Pprof.User, "PPROF_USER")
	readString(&cfg.Pprof.Pass, "PPROF_PASS")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Booking.OperationTimeout <= 0 {
		return nil, fmt.Errorf("invalid booking operation timeout: %v", cfg.Booking.OperationTimeout)
	}
	if cfg.Redis.DraftTTL <= 0 {
		return nil, fmt.Errorf("invalid draft ttl: %v", cfg.Redis.DraftTTL)
	}
	return cfg, nil
}

func readString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func readDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
