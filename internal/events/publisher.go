package events

import (
	"context"
	"time"
)

const (
	Exchange                = "moviequiz.events"
	RoundFinishedRoutingKey = "round.finished"
)

type RoundFinished struct {
	SessionID string    `json:"sessionId"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Date      time.Time `json:"date"`
}

type Publisher interface {
	PublishRoundFinished(ctx context.Context, ev RoundFinished) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRoundFinished(context.Context, RoundFinished) error { return nil }
func (NopPublisher) Close() error                                             { return nil }
