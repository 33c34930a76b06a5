package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/events"
	"github.com/ArtemMoroz51/MovieQuiz/internal/handler"
	"github.com/ArtemMoroz51/MovieQuiz/internal/logger"
	"github.com/ArtemMoroz51/MovieQuiz/internal/movies"
	"github.com/ArtemMoroz51/MovieQuiz/internal/service"
	"github.com/ArtemMoroz51/MovieQuiz/internal/storage"
	"github.com/ArtemMoroz51/MovieQuiz/internal/ws"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const warmUpTimeout = 20 * time.Second

type App struct {
	cfg Config
	log *zap.Logger

	db        *pgxpool.Pool
	rdb       *redis.Client
	publisher events.Publisher
	source    service.QuestionSource

	srv *http.Server
}

func New(cfg Config) (*App, error) {
	l, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: cfg.LogDevelopment,
	})
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: l}

	kv, err := a.openKV()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("amqp: %w", err)
		}
		a.publisher = p
	}

	moviesClient := movies.NewClient(cfg.MoviesAPIURL, nil)
	a.source = service.NewQuestionSource(moviesClient, nil, l)
	stats := service.NewStatisticsStore(kv, nil, l)

	gameSvc := service.NewGameService(a.source, stats, service.Config{
		QuestionsAmount:   cfg.QuestionsAmount,
		PresentationDelay: cfg.PresentationDelay,
	})
	adminSvc := service.NewAdminService(a.source)

	hub := ws.NewHub(gameSvc, a.source, a.publisher, l)

	r := mux.NewRouter()
	handler.RegisterHandlers(r, gameSvc, hub, l)
	handler.RegisterAdminHandlers(r, adminSvc, cfg.AdminToken, l)

	a.srv = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	return a, nil
}

func (a *App) openKV() (storage.KV, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch a.cfg.StatsBackend {
	case BackendPostgres:
		db, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.db = db

		kv := storage.NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		return kv, nil

	case BackendRedis:
		opts, err := redis.ParseURL(a.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.rdb = redis.NewClient(opts)

		kv := storage.NewRedisKV(a.rdb)
		if err := kv.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return kv, nil

	case BackendMemory, "":
		a.log.Warn("statistics kept in memory, they will not survive a restart")
		return storage.NewMemoryKV(), nil

	default:
		return nil, fmt.Errorf("unknown stats backend %q", a.cfg.StatsBackend)
	}
}

func (a *App) Run() error {
	a.log.Info("server started",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("log_level", a.cfg.LogLevel),
		zap.String("stats_backend", a.cfg.StatsBackend),
		zap.Bool("events", a.cfg.AMQPURL != ""),
	)

	// A failed warm-up is not fatal: the first session retries the load.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmUpTimeout)
		defer cancel()
		if err := a.source.LoadCatalog(ctx); err != nil {
			a.log.Warn("catalog warm-up failed", zap.Error(err))
			return
		}
		a.log.Info("catalog warmed up", zap.Int("movies", a.source.CatalogSize()))
	}()

	err := a.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("event publisher close failed", zap.Error(err))
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
