package ws

import "encoding/json"

// client -> server
const (
	TypeStart  = "start"
	TypeAnswer = "answer"
	TypeAck    = "ack"
)

// server -> client
const (
	TypeSessionState = "session_state"
	TypeLoading      = "loading"
	TypeQuestion     = "question"
	TypeAnswerResult = "answer_result"
	TypeRoundResult  = "round_result"
	TypeRetry        = "retry"
	TypeError        = "error"
)

type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type AnswerPayload struct {
	Answer *bool `json:"answer"`
}

type AnswerResultPayload struct {
	Correct bool `json:"correct"`
}

type clientMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func errorEnvelope(msg string) Envelope {
	return Envelope{Type: TypeError, Payload: map[string]string{"message": msg}}
}
