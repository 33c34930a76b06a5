package quiz

import (
	"context"
	"time"
)

// QuestionsAmount is the number of questions in one round.
const QuestionsAmount = 10

type State string

const (
	StateIdle             State = "idle"
	StateAwaitingQuestion State = "awaiting_question"
	StateAwaitingAnswer   State = "awaiting_answer"
	StateFinished         State = "finished"
)

type Question struct {
	Image         []byte
	Text          string
	CorrectAnswer bool
}

type GameResult struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Date    time.Time `json:"date"`
}

// IsBetterThan reports whether r beats other. Ties are not improvements.
func (r GameResult) IsBetterThan(other GameResult) bool {
	return r.Correct > other.Correct
}

type Statistics struct {
	GamesCount int        `json:"gamesCount"`
	BestGame   GameResult `json:"bestGame"`

	// TotalAccuracy is nil until at least one game has been stored.
	TotalAccuracy *float64 `json:"totalAccuracy,omitempty"`
}

type QuestionSource interface {
	NextQuestion(ctx context.Context) (Question, error)
}

type StatisticsRecorder interface {
	Store(ctx context.Context, correct, total int) (GameResult, error)
	Summary(ctx context.Context) (Statistics, error)
}
