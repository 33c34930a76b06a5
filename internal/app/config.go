package app

import "time"

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	HTTPAddr   string
	AdminToken string

	LogLevel       string
	LogFile        string
	LogDevelopment bool

	MoviesAPIURL string

	StatsBackend string
	DatabaseURL  string
	RedisURL     string

	// Empty disables round events.
	AMQPURL string

	PresentationDelay time.Duration
	QuestionsAmount   int
}
