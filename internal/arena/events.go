package arena

// Outbound event names. The transport wraps each payload in an envelope whose
// "type" field carries the event name.
const (
	EventGameStart   = "game-start"
	EventGameMessage = "game-message"
	EventGameEnd     = "game-end"
	EventError       = "error"
)

// Perceived roles sent in game-start. Both are assigned regardless of whether
// the counterpart really is automated; the wire never says.
const (
	RoleQuestioner  = "human"
	RoleCounterpart = "bot"
)

type GameStartPayload struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type GameMessagePayload struct {
	Message  string `json:"message"`
	Opponent bool   `json:"opponent"`
}

type GameEndPayload struct {
	Winner *string `json:"winner"`
}

type ErrorPayload struct {
	Text string `json:"text"`
}

// Transport is the connection layer the manager emits through. Rooms are
// named channels; the manager keeps one room per session.
type Transport interface {
	SendTo(connID, event string, payload any)
	BroadcastTo(room, event string, payload any)
	Join(room, connID string)
	Leave(room, connID string)
}
