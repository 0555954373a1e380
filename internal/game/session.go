package game

import "github.com/google/uuid"

type State string

const (
	StateWaiting State = "waiting"
	StatePlaying State = "playing"
	StateEnded   State = "ended"
)

// Vote is the questioner's guess about the counterpart.
type Vote string

const (
	VoteNone        Vote = ""
	VoteBot         Vote = "bot"
	VoteParticipant Vote = "participant"
)

// Outcome strings carried on the wire in game-end. ForceEnd causes reuse the
// same values: a disconnecting questioner forfeits with OutcomeBotHuman, a
// disconnecting counterpart with OutcomeHuman.
const (
	OutcomeBot      = "bot"
	OutcomeHuman    = "human"
	OutcomeBotHuman = "bot-human"
)

// Participant is one side of a session. For humans ID is the connection id;
// for automated participants it is a throwaway uuid.
type Participant struct {
	Automated  bool
	ID         string
	Transcript []string
}

func NewHuman(connID string) *Participant {
	return &Participant{ID: connID}
}

func NewBot() *Participant {
	return &Participant{Automated: true, ID: uuid.NewString()}
}

// Session is the pure state of one paired interaction. It performs no
// turn-legality or caller checks; the manager validates events before
// mutating it.
type Session struct {
	ID            string
	Questioner    *Participant
	Counterpart   *Participant
	TurnHolder    *Participant
	State         State
	Vote          Vote
	ForcedOutcome string
}

func NewSession(questioner, counterpart *Participant) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Questioner:  questioner,
		Counterpart: counterpart,
		TurnHolder:  questioner,
		State:       StateWaiting,
	}
}

func (s *Session) Start() {
	s.State = StatePlaying
}

// RecordTurn appends text to the author's transcript.
func (s *Session) RecordTurn(author *Participant, text string) {
	author.Transcript = append(author.Transcript, text)
}

// AdvanceTurn flips the turn holder to the other participant.
func (s *Session) AdvanceTurn() {
	if s.TurnHolder == s.Questioner {
		s.TurnHolder = s.Counterpart
		return
	}
	s.TurnHolder = s.Questioner
}

// Other returns the participant opposite p.
func (s *Session) Other(p *Participant) *Participant {
	if p == s.Questioner {
		return s.Counterpart
	}
	return s.Questioner
}

// CastVote records the questioner's guess and ends the session. It returns
// the participant who was voted-as-bot: voting "bot" accuses the counterpart,
// voting "participant" leaves the questioner as the only remaining suspect.
// The return value is display material only; the winner comes from
// ComputeWinner. Returns nil if the session is not in play.
func (s *Session) CastVote(v Vote) *Participant {
	if s.State != StatePlaying {
		return nil
	}
	s.Vote = v
	s.State = StateEnded
	if v == VoteBot {
		return s.Counterpart
	}
	return s.Questioner
}

// ForceEnd terminates the session with a fixed outcome, bypassing the vote.
func (s *Session) ForceEnd(cause string) {
	s.ForcedOutcome = cause
	s.State = StateEnded
}

// ComputeWinner resolves the outcome. A forced outcome wins over everything;
// with no vote cast the outcome is undefined (ok=false). Otherwise: guessing
// "bot" against a real bot yields OutcomeBot, guessing "participant" against
// a real human yields the degenerate OutcomeBotHuman, and every other
// combination resolves OutcomeHuman.
func (s *Session) ComputeWinner() (string, bool) {
	if s.ForcedOutcome != "" {
		return s.ForcedOutcome, true
	}
	if s.Vote == VoteNone {
		return "", false
	}
	if s.Vote == VoteBot && s.Counterpart.Automated {
		return OutcomeBot, true
	}
	if s.Vote == VoteParticipant && !s.Counterpart.Automated {
		return OutcomeBotHuman, true
	}
	return OutcomeHuman, true
}
