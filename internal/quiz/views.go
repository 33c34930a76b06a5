package quiz

import (
	"fmt"
	"strings"
)

const bestGameDateLayout = "02.01.06 15:04"

type QuestionView struct {
	Image    []byte `json:"image"`
	Text     string `json:"text"`
	Position string `json:"position"`
}

type AlertView struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	ButtonText string `json:"buttonText"`
}

type AnswerOutcome struct {
	Correct    bool
	Finished   bool
	Generation uint64

	// Set only when the answer finished the round.
	Record *GameResult
	Result *AlertView
}

type SessionSnapshot struct {
	ID              string `json:"id"`
	State           State  `json:"state"`
	QuestionIndex   int    `json:"questionIndex"`
	CorrectAnswers  int    `json:"correctAnswers"`
	QuestionsAmount int    `json:"questionsAmount"`
	Question        string `json:"question,omitempty"`
}

func RoundResultAlert(correct, total int, stats Statistics) AlertView {
	var b strings.Builder
	fmt.Fprintf(&b, "Your result: %d/%d\n", correct, total)
	fmt.Fprintf(&b, "Quizzes played: %d\n", stats.GamesCount)
	fmt.Fprintf(&b, "Record: %d/%d (%s)\n",
		stats.BestGame.Correct, stats.BestGame.Total,
		stats.BestGame.Date.Local().Format(bestGameDateLayout),
	)
	accuracy := 0.0
	if stats.TotalAccuracy != nil {
		accuracy = *stats.TotalAccuracy
	}
	fmt.Fprintf(&b, "Average accuracy: %.2f%%", accuracy)

	return AlertView{
		Title:      "This round is over!",
		Message:    b.String(),
		ButtonText: "Play again",
	}
}

func RetryAlert(err error) AlertView {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return AlertView{
		Title:      "Error",
		Message:    msg,
		ButtonText: "Try again",
	}
}
