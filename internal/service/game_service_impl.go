package service

import (
	"context"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
)

type gameService struct {
	sm    *quiz.SessionManager
	stats StatisticsStore
	cfg   Config
}

func NewGameService(source QuestionSource, stats StatisticsStore, cfg Config) GameService {
	if cfg.QuestionsAmount <= 0 {
		cfg.QuestionsAmount = quiz.QuestionsAmount
	}
	if cfg.PresentationDelay <= 0 {
		cfg.PresentationDelay = time.Second
	}
	return &gameService{
		sm:    quiz.NewSessionManager(source, stats, cfg.QuestionsAmount),
		stats: stats,
		cfg:   cfg,
	}
}

func (s *gameService) CreateSession() *quiz.Session {
	return s.sm.CreateSession()
}

func (s *gameService) GetSession(id string) (*quiz.Session, bool) {
	return s.sm.GetSession(id)
}

func (s *gameService) RemoveSession(id string) {
	s.sm.RemoveSession(id)
}

func (s *gameService) Statistics(ctx context.Context) (quiz.Statistics, error) {
	return s.stats.Summary(ctx)
}

func (s *gameService) QuestionsAmount() int             { return s.cfg.QuestionsAmount }
func (s *gameService) PresentationDelay() time.Duration { return s.cfg.PresentationDelay }
