package public

// StatsResponse is the read-only arena snapshot for spectator dashboards.
// It carries counts only; session and connection identities stay private.
type StatsResponse struct {
	Connections    int `json:"connections"`
	Queued         int `json:"queued"`
	ActiveSessions int `json:"active_sessions"`
}
