package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestAMQPPublisher_PublishRoundFinished(t *testing.T) {
	ch := new(mockChannel)
	p := &AMQPPublisher{ch: ch}

	ev := RoundFinished{
		SessionID: "s1",
		Correct:   6,
		Total:     10,
		Date:      time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
	}

	ch.On("PublishWithContext", mock.Anything, Exchange, RoundFinishedRoutingKey, false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var got RoundFinished
			if err := json.Unmarshal(msg.Body, &got); err != nil {
				return false
			}
			return msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp.Persistent &&
				got.SessionID == "s1" && got.Correct == 6 && got.Total == 10
		}),
	).Return(nil).Once()

	require.NoError(t, p.PublishRoundFinished(context.Background(), ev))
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := new(mockChannel)
	p := &AMQPPublisher{ch: ch}

	pubErr := errors.New("channel closed")
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(pubErr).Once()

	err := p.PublishRoundFinished(context.Background(), RoundFinished{SessionID: "s1"})
	require.ErrorIs(t, err, pubErr)
}

func TestAMQPPublisher_CloseChannelOnly(t *testing.T) {
	ch := new(mockChannel)
	p := &AMQPPublisher{ch: ch}

	ch.On("Close").Return(nil).Once()
	require.NoError(t, p.Close())
	ch.AssertExpectations(t)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.NoError(t, p.PublishRoundFinished(context.Background(), RoundFinished{}))
	require.NoError(t, p.Close())
}
