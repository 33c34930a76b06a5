package service

import (
	"context"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
)

type Config struct {
	QuestionsAmount   int
	PresentationDelay time.Duration
}

type GameService interface {
	CreateSession() *quiz.Session
	GetSession(id string) (*quiz.Session, bool)
	RemoveSession(id string)

	Statistics(ctx context.Context) (quiz.Statistics, error)

	QuestionsAmount() int
	PresentationDelay() time.Duration
}
