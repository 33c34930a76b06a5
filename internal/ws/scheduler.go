package ws

import (
	"context"
	"errors"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/events"
	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
	"go.uber.org/zap"
)

// beginRound serves both the first start and the acknowledgment of a result
// or retry prompt. A catalog that failed to load is fetched again first.
func (h *Hub) beginRound(sess *quiz.Session) {
	if !h.source.Ready() {
		h.Send(sess.ID, Envelope{Type: TypeLoading})

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		err := h.source.LoadCatalog(ctx)
		cancel()
		if err != nil {
			sess.Fail()
			h.sendRetry(sess, err)
			return
		}
	}

	gen := sess.Start()
	h.log.Info("round started",
		zap.String("session_id", sess.ID),
		zap.Uint64("generation", gen),
	)
	h.requestQuestion(sess)
}

func (h *Hub) requestQuestion(sess *quiz.Session) {
	h.Send(sess.ID, Envelope{Type: TypeLoading})

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	view, err := sess.NextQuestion(ctx)
	switch {
	case err == nil:
		h.Send(sess.ID, Envelope{Type: TypeQuestion, Payload: view})

	case errors.Is(err, quiz.ErrStaleResult):
		h.log.Debug("stale question dropped", zap.String("session_id", sess.ID))

	case errors.Is(err, quiz.ErrBadPhase):
		h.log.Warn("question requested in wrong phase",
			zap.String("session_id", sess.ID),
			zap.String("state", string(sess.State())),
		)

	case errors.Is(err, quiz.ErrNoDataAvailable):
		h.log.DPanic("question requested before catalog load", zap.String("session_id", sess.ID))
		h.Send(sess.ID, errorEnvelope("no questions available"))

	default:
		h.sendRetry(sess, err)
	}
}

func (h *Hub) submitAnswer(sess *quiz.Session, given bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	out, err := sess.SubmitAnswer(ctx, given)
	if errors.Is(err, quiz.ErrBadPhase) {
		h.Send(sess.ID, errorEnvelope(err.Error()))
		return
	}
	if err != nil {
		h.log.Error("round finish failed", zap.String("session_id", sess.ID), zap.Error(err))
		h.sendRetry(sess, err)
		return
	}

	h.Send(sess.ID, Envelope{Type: TypeAnswerResult, Payload: AnswerResultPayload{Correct: out.Correct}})

	if out.Finished && out.Record != nil {
		go h.publishRoundFinished(sess.ID, *out.Record)
	}

	go h.scheduleAfterAnswer(sess, out, h.svc.PresentationDelay())
}

// scheduleAfterAnswer keeps the answer feedback on screen for delay before
// showing the next question or the round result. The session has already
// moved on; only the presentation waits.
func (h *Hub) scheduleAfterAnswer(sess *quiz.Session, out quiz.AnswerOutcome, delay time.Duration) {
	time.Sleep(delay)

	if !sess.IsCurrent(out.Generation) {
		return
	}

	if out.Finished {
		h.Send(sess.ID, Envelope{Type: TypeRoundResult, Payload: out.Result})
		return
	}
	h.requestQuestion(sess)
}

func (h *Hub) sendRetry(sess *quiz.Session, err error) {
	h.log.Warn("round failed, retry offered",
		zap.String("session_id", sess.ID),
		zap.Error(err),
	)
	h.Send(sess.ID, Envelope{Type: TypeRetry, Payload: quiz.RetryAlert(err)})
}

func (h *Hub) publishRoundFinished(sessionID string, rec quiz.GameResult) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := h.publisher.PublishRoundFinished(ctx, events.RoundFinished{
		SessionID: sessionID,
		Correct:   rec.Correct,
		Total:     rec.Total,
		Date:      rec.Date,
	})
	if err != nil {
		h.log.Warn("round event publish failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
