package ws

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Inbound event names. Every frame is a JSON envelope discriminated by its
// "type" field.
const (
	inboundQueue       = "queue"
	inboundUnqueue     = "unqueue"
	inboundGameMessage = "game-message"
	inboundGameVote    = "game-vote"
	inboundGameEndAck  = "game-end"
)

const eventBlocked = "blocked"

var validate = validator.New()

type envelope struct {
	Type string `json:"type"`
}

type gameMessageInbound struct {
	Game    string `json:"game" validate:"required,uuid4"`
	Message string `json:"message" validate:"required,max=100"`
}

// Human is a pointer so a missing field fails validation while an explicit
// false passes.
type gameVoteInbound struct {
	Game  string `json:"game" validate:"required,uuid4"`
	Human *bool  `json:"human" validate:"required"`
}

type blockedPayload struct {
	RetryMS int64 `json:"retry-ms"`
}

// decodeInbound unmarshals raw into dst and checks its validate tags.
func decodeInbound(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
