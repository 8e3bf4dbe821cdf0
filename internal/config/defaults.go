package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "kargo",
	Pass: "kargo",
	Name: "kargo_booking",
}

var defaultRedis = Redis{
	Addr:     "127.0.0.1:6379",
	DB:       0,
	DraftTTL: 48 * time.Hour,
}

var defaultKafka = Kafka{
	Topic:   "order-status-events",
	GroupID: "kargo-booking-worker",
}

var defaultGeocode = Geocode{
	BaseURL:     "http://localhost:8090",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    1200 * time.Millisecond,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultBooking = Booking{
	OperationTimeout: 3 * time.Second,
}

var defaultPprof = Pprof{
	Enabled: false,
	Port:    6060,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultRedis returns the default draft store settings.
func DefaultRedis() Redis { return defaultRedis }

// DefaultKafka returns the default status feed settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultGeocode returns the default geocode gateway settings.
func DefaultGeocode() Geocode { return defaultGeocode }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultBooking returns the default business-layer settings.
func DefaultBooking() Booking { return defaultBooking }

// DefaultPprof returns the default profiler settings.
func DefaultPprof() Pprof { return defaultPprof }
