package public

import (
	"context"

	"turing-arena/internal/arena"
)

type Service struct {
	manager *arena.Manager
}

func NewService(m *arena.Manager) *Service {
	return &Service{manager: m}
}

func (s *Service) Stats(_ context.Context) (*StatsResponse, error) {
	snap := s.manager.Snapshot()
	return &StatsResponse{
		Connections:    snap.Connections,
		Queued:         snap.Queued,
		ActiveSessions: snap.ActiveSessions,
	}, nil
}
