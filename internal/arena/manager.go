package arena

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"turing-arena/internal/game"
	"turing-arena/internal/responder"
)

// Responder produces the automated side's reply. Failures are absorbed by the
// manager with a canned fallback line and never reach participants.
type Responder interface {
	Generate(ctx context.Context, lastMessage string, priorReplies []string) (string, error)
}

type Config struct {
	QueueTick     time.Duration
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
	ReplyTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueTick <= 0 {
		c.QueueTick = 2 * time.Second
	}
	if c.ReplyDelayMin < 0 {
		c.ReplyDelayMin = 0
	}
	if c.ReplyDelayMax < c.ReplyDelayMin {
		c.ReplyDelayMax = c.ReplyDelayMin
	}
	if c.ReplyTimeout <= 0 {
		c.ReplyTimeout = 30 * time.Second
	}
	return c
}

type connRecord struct {
	session *game.Session
}

// Manager owns the connection registry, the matchmaking queue, and the active
// session set. Transport event handlers and the matchmaking tick are the only
// writers; mu serializes them.
type Manager struct {
	cfg       Config
	responder Responder

	mu        sync.Mutex
	transport Transport
	conns     map[string]*connRecord
	sessions  map[string]*game.Session
	waiting   queue
}

func NewManager(cfg Config, resp Responder) *Manager {
	return &Manager{
		cfg:       cfg.withDefaults(),
		responder: resp,
		conns:     map[string]*connRecord{},
		sessions:  map[string]*game.Session{},
	}
}

// AttachTransport wires the connection layer. Must be called before any
// traffic; the transport and the manager reference each other, so one of the
// two is attached after construction.
func (m *Manager) AttachTransport(t Transport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transport = t
}

// Run drives the matchmaking tick until ctx is cancelled. Each tick makes a
// single pairing attempt; a failed attempt never stops later ticks.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.QueueTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.MatchOnce()
		}
	}
}

// MatchOnce pops one waiting connection and pairs it: against a bot when it
// was the only waiter, otherwise a coin flip between a bot session and a
// human pair.
func (m *Manager) MatchOnce() {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.waiting.pop()
	if !ok {
		return
	}
	useBot := true
	if m.waiting.len() > 0 {
		useBot = pickEither(true, false)
	}
	if useBot {
		m.startSessionLocked(a, "")
		return
	}
	b, ok := m.waiting.pop()
	if !ok {
		// Decided on a human pair but nobody was left; no session was
		// created, so the candidate goes back in.
		m.waiting.enqueue(a)
		return
	}
	// Either of the two may end up the vote-caster.
	if pickEither(true, false) {
		a, b = b, a
	}
	m.startSessionLocked(a, b)
}

// startSessionLocked creates and announces a session with questionerID asking
// the questions. An empty counterpartID means an automated counterpart.
func (m *Manager) startSessionLocked(questionerID, counterpartID string) {
	qRec := m.conns[questionerID]
	if qRec == nil {
		log.Warn().Str("conn", questionerID).Msg("matched connection has no record, dropping")
		if counterpartID != "" {
			m.waiting.enqueue(counterpartID)
		}
		return
	}

	questioner := game.NewHuman(questionerID)
	counterpart := game.NewBot()
	var cRec *connRecord
	if counterpartID != "" {
		cRec = m.conns[counterpartID]
		if cRec == nil {
			log.Warn().Str("conn", counterpartID).Msg("matched connection has no record, dropping")
			m.waiting.enqueue(questionerID)
			return
		}
		counterpart = game.NewHuman(counterpartID)
	}

	sess := game.NewSession(questioner, counterpart)
	sess.Start()
	m.sessions[sess.ID] = sess
	qRec.session = sess
	m.transport.Join(sess.ID, questionerID)
	if cRec != nil {
		cRec.session = sess
		m.transport.Join(sess.ID, counterpartID)
	}

	m.transport.SendTo(questionerID, EventGameStart, GameStartPayload{ID: sess.ID, Role: RoleQuestioner})
	if !counterpart.Automated {
		m.transport.SendTo(counterpart.ID, EventGameStart, GameStartPayload{ID: sess.ID, Role: RoleCounterpart})
	}
	log.Info().
		Str("session", sess.ID).
		Bool("automated", counterpart.Automated).
		Msg("session started")
}

// OnConnect registers a new connection.
func (m *Manager) OnConnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[connID] = &connRecord{}
}

// OnDisconnect drops the connection from the queue and forfeits its session
// if one is running. The side that stays gets told it won.
func (m *Manager) OnDisconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.waiting.dequeue(connID)
	rec := m.conns[connID]
	if rec == nil {
		log.Warn().Str("conn", connID).Msg("disconnect for unknown connection")
		return
	}
	if sess := rec.session; sess != nil {
		cause := game.OutcomeHuman
		if sess.Questioner.ID == connID {
			cause = game.OutcomeBotHuman
		}
		sess.ForceEnd(cause)
		m.endGameLocked(sess)
	}
	delete(m.conns, connID)
}

// OnQueueJoin adds the connection to the waiting list. Re-joining while
// queued or while playing has no effect.
func (m *Manager) OnQueueJoin(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.conns[connID]
	if rec == nil || rec.session != nil {
		return
	}
	m.waiting.enqueue(connID)
}

func (m *Manager) OnQueueLeave(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waiting.dequeue(connID)
}

// OnTurnMessage validates and applies one turn from connID. On success the
// message is relayed to both sides with masked authorship and, when the turn
// passes to an automated counterpart, a delayed reply is scheduled.
func (m *Manager) OnTurnMessage(connID, sessionID, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.conns[connID]
	if rec == nil {
		log.Warn().Str("conn", connID).Msg("turn from unknown connection")
		return
	}
	sess := rec.session
	if sess == nil {
		m.transport.SendTo(connID, EventError, ErrorPayload{Text: "You are not in a game"})
		return
	}
	if sess.ID != sessionID {
		m.transport.SendTo(connID, EventError, ErrorPayload{Text: "That is not your game"})
		return
	}
	if sess.TurnHolder.ID != connID {
		m.transport.SendTo(connID, EventError, ErrorPayload{Text: "It is not your turn"})
		return
	}

	author := sess.TurnHolder
	sess.RecordTurn(author, text)
	m.relayLocked(sess, author, text)
	sess.AdvanceTurn()

	if sess.TurnHolder.Automated {
		prior := append([]string(nil), sess.Counterpart.Transcript...)
		go m.produceBotReply(sess.ID, text, prior)
	}
}

// OnVote applies the questioner's verdict and ends the game.
func (m *Manager) OnVote(connID, sessionID string, humanGuess bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.conns[connID]
	if rec == nil {
		log.Warn().Str("conn", connID).Msg("vote from unknown connection")
		return
	}
	sess := rec.session
	if sess == nil {
		m.transport.SendTo(connID, EventError, ErrorPayload{Text: "You are not in a game"})
		return
	}
	if sess.ID != sessionID {
		m.transport.SendTo(connID, EventError, ErrorPayload{Text: "That is not your game"})
		return
	}
	if sess.Questioner.ID != connID {
		m.transport.SendTo(connID, EventError, ErrorPayload{Text: "You can not cast a vote as you are not the questioner"})
		return
	}

	vote := game.VoteBot
	if humanGuess {
		vote = game.VoteParticipant
	}
	accused := sess.CastVote(vote)
	if accused != nil {
		log.Info().Str("session", sess.ID).Bool("accused_automated", accused.Automated).Msg("vote cast")
	}
	m.endGameLocked(sess)
}

// relayLocked delivers one turn to both real sides. Authorship is expressed
// only as self vs opponent; whether either side is automated never leaks.
func (m *Manager) relayLocked(sess *game.Session, author *game.Participant, text string) {
	for _, p := range []*game.Participant{sess.Questioner, sess.Counterpart} {
		if p.Automated {
			continue
		}
		m.transport.SendTo(p.ID, EventGameMessage, GameMessagePayload{
			Message:  text,
			Opponent: p != author,
		})
	}
}

// produceBotReply waits out the humanizing delay, asks the responder for a
// line, and applies it. Runs outside the manager lock.
func (m *Manager) produceBotReply(sessionID, lastMessage string, priorReplies []string) {
	time.Sleep(randDuration(m.cfg.ReplyDelayMin, m.cfg.ReplyDelayMax))

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ReplyTimeout)
	reply, err := m.responder.Generate(ctx, lastMessage, priorReplies)
	cancel()
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Debug().Err(err).Str("session", sessionID).Msg("responder failed, using fallback")
		reply = responder.FallbackLine()
	}
	m.ApplyBotReply(sessionID, reply)
}

// ApplyBotReply records a delayed automated turn. The session may have ended
// or been torn down while the delay ran, or the turn may have moved on; stale
// replies are dropped without touching anything.
func (m *Manager) ApplyBotReply(sessionID, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.sessions[sessionID]
	if sess == nil || sess.State != game.StatePlaying {
		return
	}
	bot := sess.TurnHolder
	if !bot.Automated {
		return
	}
	sess.RecordTurn(bot, reply)
	m.relayLocked(sess, bot, reply)
	sess.AdvanceTurn()
}

// endGameLocked broadcasts the outcome to the session room, clears both
// sides' registry entries, and removes the session from the active set.
func (m *Manager) endGameLocked(sess *game.Session) {
	sess.State = game.StateEnded

	var payload GameEndPayload
	if winner, ok := sess.ComputeWinner(); ok {
		payload.Winner = &winner
	}
	m.transport.BroadcastTo(sess.ID, EventGameEnd, payload)
	log.Info().Str("session", sess.ID).Interface("winner", payload.Winner).Msg("session ended")

	for _, p := range []*game.Participant{sess.Questioner, sess.Counterpart} {
		if p.Automated {
			continue
		}
		if rec := m.conns[p.ID]; rec != nil && rec.session == sess {
			rec.session = nil
		}
		m.transport.Leave(sess.ID, p.ID)
	}
	delete(m.sessions, sess.ID)
}

// Stats is a read-only snapshot for the public API.
type Stats struct {
	Connections    int
	Queued         int
	ActiveSessions int
}

func (m *Manager) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Connections:    len(m.conns),
		Queued:         m.waiting.len(),
		ActiveSessions: len(m.sessions),
	}
}
