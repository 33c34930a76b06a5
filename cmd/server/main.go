package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	env := getenv("ENV", "development")
	if env != "production" {
		// .env is optional outside production.
		_ = godotenv.Load()
	}

	delay, err := time.ParseDuration(getenv("PRESENTATION_DELAY", "1s"))
	if err != nil {
		panic("PRESENTATION_DELAY: " + err.Error())
	}
	amount, err := strconv.Atoi(getenv("QUESTIONS_AMOUNT", "10"))
	if err != nil {
		panic("QUESTIONS_AMOUNT: " + err.Error())
	}

	cfg := app.Config{
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),
		AdminToken: os.Getenv("ADMIN_TOKEN"),

		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
		LogDevelopment: env != "production",

		MoviesAPIURL: os.Getenv("MOVIES_API_URL"),

		StatsBackend: getenv("STATS_BACKEND", app.BackendPostgres),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		AMQPURL:      os.Getenv("AMQP_URL"),

		PresentationDelay: delay,
		QuestionsAmount:   amount,
	}

	if cfg.MoviesAPIURL == "" {
		panic("MOVIES_API_URL is required")
	}

	switch cfg.StatsBackend {
	case app.BackendPostgres:
		if cfg.DatabaseURL == "" {
			panic("DATABASE_URL is required")
		}
	case app.BackendRedis:
		if cfg.RedisURL == "" {
			panic("REDIS_URL is required")
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		panic(err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.Shutdown(shutdownCtx)
	}()

	if err := a.Run(); err != nil {
		panic(err)
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
