package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"turing-arena/internal/arena"
)

type Client struct {
	id          string
	conn        *websocket.Conn
	send        chan []byte
	lastInbound time.Time
}

// Server upgrades websocket connections, assigns each an opaque id, and
// bridges frames to the session manager. It implements arena.Transport.
type Server struct {
	manager     *arena.Manager
	upgrader    websocket.Upgrader
	minInterval time.Duration

	mu      sync.Mutex
	clients map[string]*Client
	rooms   map[string]map[string]bool
}

func NewServer(manager *arena.Manager, minInterval time.Duration) *Server {
	return &Server{
		manager:     manager,
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		minInterval: minInterval,
		clients:     map[string]*Client{},
		rooms:       map[string]map[string]bool{},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{id: newConnID(), conn: conn, send: make(chan []byte, 16)}

	s.mu.Lock()
	s.clients[client.id] = client
	s.mu.Unlock()
	s.manager.OnConnect(client.id)
	log.Debug().Str("conn", client.id).Msg("connection opened")

	go s.writeLoop(client)
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if retry := s.throttle(c); retry > 0 {
			s.SendTo(c.id, eventBlocked, blockedPayload{RetryMS: retry.Milliseconds()})
			continue
		}

		var base envelope
		if err := json.Unmarshal(raw, &base); err != nil {
			s.SendTo(c.id, arena.EventError, arena.ErrorPayload{Text: "Invalid data"})
			continue
		}
		switch base.Type {
		case inboundQueue:
			s.manager.OnQueueJoin(c.id)
		case inboundUnqueue:
			s.manager.OnQueueLeave(c.id)
		case inboundGameMessage:
			var msg gameMessageInbound
			if err := decodeInbound(raw, &msg); err != nil {
				s.SendTo(c.id, arena.EventError, arena.ErrorPayload{Text: "Invalid data"})
				continue
			}
			s.manager.OnTurnMessage(c.id, msg.Game, msg.Message)
		case inboundGameVote:
			var vote gameVoteInbound
			if err := decodeInbound(raw, &vote); err != nil {
				s.SendTo(c.id, arena.EventError, arena.ErrorPayload{Text: "Invalid data"})
				continue
			}
			s.manager.OnVote(c.id, vote.Game, *vote.Human)
		case inboundGameEndAck:
			// Clients acknowledge game-end; nothing to do server-side.
		default:
			s.SendTo(c.id, arena.EventError, arena.ErrorPayload{Text: "Unknown event"})
		}
	}
}

// throttle enforces a minimum spacing between inbound frames. Returns how
// long the client has to wait, or 0 when the frame may be processed.
func (s *Server) throttle(c *Client) time.Duration {
	if s.minInterval <= 0 {
		return 0
	}
	now := time.Now()
	if wait := s.minInterval - now.Sub(c.lastInbound); wait > 0 {
		return wait
	}
	c.lastInbound = now
	return 0
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	for room, members := range s.rooms {
		delete(members, c.id)
		if len(members) == 0 {
			delete(s.rooms, room)
		}
	}
	s.mu.Unlock()

	s.manager.OnDisconnect(c.id)
	safeClose(c.send)
	log.Debug().Str("conn", c.id).Msg("connection closed")
}

// SendTo delivers one event to a single connection. Unknown ids are ignored;
// the session may outlive a connection by a tick or two.
func (s *Server) SendTo(connID, event string, payload any) {
	s.mu.Lock()
	c := s.clients[connID]
	s.mu.Unlock()
	if c == nil {
		return
	}
	raw, err := encodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("encode outbound event")
		return
	}
	safeSend(c.send, raw)
}

// BroadcastTo delivers one event to every member of a room.
func (s *Server) BroadcastTo(room, event string, payload any) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.rooms[room]))
	for id := range s.rooms[room] {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.SendTo(id, event, payload)
	}
}

func (s *Server) Join(room, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[room] == nil {
		s.rooms[room] = map[string]bool{}
	}
	s.rooms[room][connID] = true
}

func (s *Server) Leave(room, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms[room], connID)
	if len(s.rooms[room]) == 0 {
		delete(s.rooms, room)
	}
}

// encodeEvent wraps payload in the outbound envelope, folding the event name
// into the "type" field.
func encodeEvent(event string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	typeRaw, _ := json.Marshal(event)
	m["type"] = typeRaw
	return json.Marshal(m)
}

func safeClose(ch chan []byte) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}

func safeSend(ch chan []byte, msg []byte) {
	defer func() {
		_ = recover()
	}()
	select {
	case ch <- msg:
	default:
	}
}
