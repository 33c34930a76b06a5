package quiz

import (
	"context"
	"fmt"
	"sync"
)

// Session drives one player through rounds of questions. State transitions
// are serialized by mu; the generation counter is bumped on every reset so
// that results requested before the reset are discarded.
type Session struct {
	ID string

	source          QuestionSource
	stats           StatisticsRecorder
	questionsAmount int

	mu                   sync.Mutex
	state                State
	currentQuestionIndex int
	correctAnswers       int
	currentQuestion      *Question
	gen                  uint64

	// set while a source request for the current generation is outstanding
	fetching bool
}

func NewSession(id string, source QuestionSource, stats StatisticsRecorder, questionsAmount int) *Session {
	if questionsAmount <= 0 {
		questionsAmount = QuestionsAmount
	}
	return &Session{
		ID:              id,
		source:          source,
		stats:           stats,
		questionsAmount: questionsAmount,
		state:           StateIdle,
	}
}

// Start begins a new round from any state and returns its generation.
func (s *Session) Start() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.state = StateAwaitingQuestion
	return s.gen
}

// NextQuestion asks the source for the question at the current index. The
// source is awaited without holding the lock. Only one request per
// generation may be outstanding: a second caller gets ErrBadPhase, and a
// result that arrives after a reset returns ErrStaleResult and changes
// nothing.
func (s *Session) NextQuestion(ctx context.Context) (QuestionView, error) {
	s.mu.Lock()
	if s.state != StateAwaitingQuestion || s.fetching {
		s.mu.Unlock()
		return QuestionView{}, ErrBadPhase
	}
	gen := s.gen
	s.fetching = true
	s.mu.Unlock()

	q, err := s.source.NextQuestion(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.state != StateAwaitingQuestion {
		return QuestionView{}, ErrStaleResult
	}
	s.fetching = false
	if err != nil {
		s.fail()
		return QuestionView{}, err
	}

	s.currentQuestion = &q
	s.state = StateAwaitingAnswer

	return QuestionView{
		Image:    q.Image,
		Text:     q.Text,
		Position: fmt.Sprintf("%d/%d", s.currentQuestionIndex+1, s.questionsAmount),
	}, nil
}

// SubmitAnswer scores the outstanding question and moves on right away:
// either to the next question or, after the last one, to the finished state.
func (s *Session) SubmitAnswer(ctx context.Context, given bool) (AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingAnswer || s.currentQuestion == nil {
		return AnswerOutcome{}, ErrBadPhase
	}

	correct := given == s.currentQuestion.CorrectAnswer
	if correct {
		s.correctAnswers++
	}
	s.currentQuestion = nil

	if s.currentQuestionIndex == s.questionsAmount-1 {
		return s.finish(ctx, correct)
	}

	s.currentQuestionIndex++
	s.state = StateAwaitingQuestion
	return AnswerOutcome{Correct: correct, Generation: s.gen}, nil
}

func (s *Session) finish(ctx context.Context, lastCorrect bool) (AnswerOutcome, error) {
	correct, total := s.correctAnswers, s.questionsAmount

	record, err := s.stats.Store(ctx, correct, total)
	if err != nil {
		s.fail()
		return AnswerOutcome{}, fmt.Errorf("store round result: %w", err)
	}
	summary, err := s.stats.Summary(ctx)
	if err != nil {
		s.fail()
		return AnswerOutcome{}, fmt.Errorf("load statistics: %w", err)
	}

	s.state = StateFinished

	alert := RoundResultAlert(correct, total, summary)

	return AnswerOutcome{
		Correct:    lastCorrect,
		Finished:   true,
		Generation: s.gen,
		Record:     &record,
		Result:     &alert,
	}, nil
}

// Fail drops the round in progress, e.g. when the display surface gave up on
// it. The session is left idle.
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail()
}

func (s *Session) fail() {
	s.reset()
	s.state = StateIdle
}

func (s *Session) reset() {
	s.currentQuestionIndex = 0
	s.correctAnswers = 0
	s.currentQuestion = nil
	s.fetching = false
	s.gen++
}

// IsCurrent reports whether gen is still the live generation.
func (s *Session) IsCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		ID:              s.ID,
		State:           s.state,
		QuestionIndex:   s.currentQuestionIndex,
		CorrectAnswers:  s.correctAnswers,
		QuestionsAmount: s.questionsAmount,
	}
	if s.currentQuestion != nil {
		snap.Question = s.currentQuestion.Text
	}
	return snap
}
