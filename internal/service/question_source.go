package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/ArtemMoroz51/MovieQuiz/internal/movies"
	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
	"go.uber.org/zap"
)

const (
	minThreshold = 8.0
	maxThreshold = 8.7
)

type CatalogLoader interface {
	LoadMostPopular(ctx context.Context) ([]movies.Movie, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

type QuestionSource interface {
	LoadCatalog(ctx context.Context) error
	Ready() bool
	CatalogSize() int
	NextQuestion(ctx context.Context) (quiz.Question, error)
}

type questionSource struct {
	loader CatalogLoader
	log    *zap.Logger

	mu      sync.RWMutex
	catalog []movies.Movie

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewQuestionSource builds questions from the loader's catalog. A nil rnd is
// replaced with a randomly seeded generator.
func NewQuestionSource(loader CatalogLoader, rnd *rand.Rand, log *zap.Logger) QuestionSource {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &questionSource{loader: loader, rnd: rnd, log: log}
}

func (s *questionSource) LoadCatalog(ctx context.Context) error {
	items, err := s.loader.LoadMostPopular(ctx)
	if err != nil {
		s.log.Warn("catalog load failed", zap.Error(err))
		return fmt.Errorf("%w: %v", quiz.ErrCatalogLoadFailed, err)
	}

	s.mu.Lock()
	s.catalog = items
	s.mu.Unlock()

	s.log.Info("catalog loaded", zap.Int("movies", len(items)))
	return nil
}

func (s *questionSource) Ready() bool {
	return s.CatalogSize() > 0
}

func (s *questionSource) CatalogSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.catalog)
}

// NextQuestion picks a movie with replacement, so repeats within a round are
// possible.
func (s *questionSource) NextQuestion(ctx context.Context) (quiz.Question, error) {
	s.mu.RLock()
	n := len(s.catalog)
	var movie movies.Movie
	if n > 0 {
		movie = s.catalog[s.intN(n)]
	}
	s.mu.RUnlock()

	if n == 0 {
		return quiz.Question{}, quiz.ErrNoDataAvailable
	}

	image, err := s.loader.FetchImage(ctx, movie.ResizedImageURL())
	if err != nil {
		s.log.Warn("poster fetch failed",
			zap.String("movie_id", movie.ID),
			zap.Error(err),
		)
		return quiz.Question{}, fmt.Errorf("%w: %v", quiz.ErrImageFetchFailed, err)
	}

	threshold := s.threshold()
	return quiz.Question{
		Image:         image,
		Text:          fmt.Sprintf("Is this movie's rating above %.1f?", threshold),
		CorrectAnswer: movie.RatingValue() > threshold,
	}, nil
}

func (s *questionSource) intN(n int) int {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.rnd.IntN(n)
}

func (s *questionSource) threshold() float64 {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return minThreshold + s.rnd.Float64()*(maxThreshold-minThreshold)
}
