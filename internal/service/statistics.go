package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
	"github.com/ArtemMoroz51/MovieQuiz/internal/storage"
	"go.uber.org/zap"
)

const (
	keyGamesCount      = "games_count"
	keyTotal           = "total"
	keyBestGameCorrect = "best_game_correct"
	keyBestGameTotal   = "best_game_total"
	keyBestGameDate    = "best_game_date"
	keySumCorrect      = "sum_correct_answers"
)

type StatisticsStore interface {
	Store(ctx context.Context, correct, total int) (quiz.GameResult, error)
	GamesCount(ctx context.Context) (int, error)
	BestGame(ctx context.Context) (quiz.GameResult, error)
	TotalAccuracy(ctx context.Context) (float64, error)
	Summary(ctx context.Context) (quiz.Statistics, error)
}

type statisticsStore struct {
	kv  storage.KV
	now func() time.Time
	log *zap.Logger

	// serializes read-modify-write in Store
	mu sync.Mutex
}

func NewStatisticsStore(kv storage.KV, now func() time.Time, log *zap.Logger) StatisticsStore {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &statisticsStore{kv: kv, now: now, log: log}
}

type aggregates struct {
	gamesCount int
	total      int
	sumCorrect int
	best       quiz.GameResult
	hasBest    bool
}

func (s *statisticsStore) Store(ctx context.Context, correct, total int) (quiz.GameResult, error) {
	if total <= 0 || correct < 0 || correct > total {
		return quiz.GameResult{}, fmt.Errorf("%w: %d/%d", quiz.ErrInvalidResult, correct, total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.read(ctx)
	if err != nil {
		return quiz.GameResult{}, err
	}

	record := quiz.GameResult{Correct: correct, Total: total, Date: s.now()}

	agg.gamesCount++
	agg.sumCorrect += correct
	updates := map[string]string{
		keyGamesCount: strconv.Itoa(agg.gamesCount),
		keyTotal:      strconv.Itoa(total),
		keySumCorrect: strconv.Itoa(agg.sumCorrect),
	}

	newBest := !agg.hasBest || record.IsBetterThan(agg.best)
	if newBest {
		updates[keyBestGameCorrect] = strconv.Itoa(record.Correct)
		updates[keyBestGameTotal] = strconv.Itoa(record.Total)
		updates[keyBestGameDate] = record.Date.UTC().Format(time.RFC3339Nano)
	}

	if err := s.kv.SetMany(ctx, updates); err != nil {
		s.log.Error("statistics write failed", zap.Error(err))
		return quiz.GameResult{}, err
	}

	s.log.Info("round stored",
		zap.Int("correct", correct),
		zap.Int("total", total),
		zap.Int("games_count", agg.gamesCount),
		zap.Bool("new_best", newBest),
	)
	return record, nil
}

func (s *statisticsStore) GamesCount(ctx context.Context) (int, error) {
	return s.getInt(ctx, keyGamesCount)
}

func (s *statisticsStore) BestGame(ctx context.Context) (quiz.GameResult, error) {
	agg, err := s.read(ctx)
	if err != nil {
		return quiz.GameResult{}, err
	}
	return agg.best, nil
}

func (s *statisticsStore) TotalAccuracy(ctx context.Context) (float64, error) {
	agg, err := s.read(ctx)
	if err != nil {
		return 0, err
	}
	return agg.accuracy()
}

func (s *statisticsStore) Summary(ctx context.Context) (quiz.Statistics, error) {
	agg, err := s.read(ctx)
	if err != nil {
		return quiz.Statistics{}, err
	}

	out := quiz.Statistics{
		GamesCount: agg.gamesCount,
		BestGame:   agg.best,
	}
	if acc, err := agg.accuracy(); err == nil {
		out.TotalAccuracy = &acc
	}
	return out, nil
}

func (a aggregates) accuracy() (float64, error) {
	if a.gamesCount == 0 || a.total == 0 {
		return 0, quiz.ErrNoGames
	}
	return float64(a.sumCorrect) / float64(a.gamesCount*a.total) * 100, nil
}

func (s *statisticsStore) read(ctx context.Context) (aggregates, error) {
	var agg aggregates
	var err error

	if agg.gamesCount, err = s.getInt(ctx, keyGamesCount); err != nil {
		return aggregates{}, err
	}
	if agg.total, err = s.getInt(ctx, keyTotal); err != nil {
		return aggregates{}, err
	}
	if agg.sumCorrect, err = s.getInt(ctx, keySumCorrect); err != nil {
		return aggregates{}, err
	}
	if agg.best.Correct, err = s.getInt(ctx, keyBestGameCorrect); err != nil {
		return aggregates{}, err
	}
	if agg.best.Total, err = s.getInt(ctx, keyBestGameTotal); err != nil {
		return aggregates{}, err
	}

	raw, ok, err := s.kv.Get(ctx, keyBestGameDate)
	if err != nil {
		return aggregates{}, err
	}
	if ok {
		date, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return aggregates{}, fmt.Errorf("parse %s: %w", keyBestGameDate, err)
		}
		agg.best.Date = date
		agg.hasBest = true
	}

	return agg, nil
}

func (s *statisticsStore) getInt(ctx context.Context, key string) (int, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
