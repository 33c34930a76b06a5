package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQuestionSource struct {
	mock.Mock
}

func (m *mockQuestionSource) LoadCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockQuestionSource) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockQuestionSource) CatalogSize() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockQuestionSource) NextQuestion(ctx context.Context) (quiz.Question, error) {
	args := m.Called(ctx)
	q, _ := args.Get(0).(quiz.Question)
	return q, args.Error(1)
}

func TestNewGameService_Defaults(t *testing.T) {
	svc := NewGameService(new(mockQuestionSource), newMemoryStats(), Config{})

	require.Equal(t, 10, svc.QuestionsAmount())
	require.Equal(t, time.Second, svc.PresentationDelay())
}

func TestNewGameService_NegativeConfigFallsBack(t *testing.T) {
	svc := NewGameService(new(mockQuestionSource), newMemoryStats(), Config{
		QuestionsAmount:   -5,
		PresentationDelay: -time.Second,
	})

	require.Equal(t, 10, svc.QuestionsAmount())
	require.Equal(t, time.Second, svc.PresentationDelay())
	require.Equal(t, svc.QuestionsAmount(), svc.CreateSession().Snapshot().QuestionsAmount)
}

func TestNewGameService_Config(t *testing.T) {
	svc := NewGameService(new(mockQuestionSource), newMemoryStats(), Config{
		QuestionsAmount:   5,
		PresentationDelay: 250 * time.Millisecond,
	})

	require.Equal(t, 5, svc.QuestionsAmount())
	require.Equal(t, 250*time.Millisecond, svc.PresentationDelay())
	require.Equal(t, 5, svc.CreateSession().Snapshot().QuestionsAmount)
}

func TestGameService_Sessions(t *testing.T) {
	svc := NewGameService(new(mockQuestionSource), newMemoryStats(), Config{})

	s := svc.CreateSession()
	got, ok := svc.GetSession(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	svc.RemoveSession(s.ID)
	_, ok = svc.GetSession(s.ID)
	require.False(t, ok)
}

func TestGameService_PlayRound_RecordsStatistics(t *testing.T) {
	src := new(mockQuestionSource)
	svc := NewGameService(src, newMemoryStats(), Config{})
	ctx := context.Background()

	src.On("NextQuestion", mock.Anything).Return(quiz.Question{Text: "Q", CorrectAnswer: false}, nil)

	s := svc.CreateSession()
	s.Start()
	var out quiz.AnswerOutcome
	for i := 0; i < 10; i++ {
		_, err := s.NextQuestion(ctx)
		require.NoError(t, err)
		out, err = s.SubmitAnswer(ctx, i%2 == 1)
		require.NoError(t, err)
	}
	require.True(t, out.Finished)
	require.Contains(t, out.Result.Message, "Your result: 5/10")

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.GamesCount)
	require.Equal(t, 5, stats.BestGame.Correct)
	require.NotNil(t, stats.TotalAccuracy)
	require.InDelta(t, 50.0, *stats.TotalAccuracy, 1e-9)
}

func TestGameService_Statistics_Error(t *testing.T) {
	kv := new(mockKV)
	kv.On("Get", mock.Anything, mock.Anything).Return("", false, errors.New("db down"))

	svc := NewGameService(new(mockQuestionSource), NewStatisticsStore(kv, nil, nil), Config{})
	_, err := svc.Statistics(context.Background())
	require.Error(t, err)
}
