package httptransport

import (
	"encoding/json"
	"net/http"

	apppublic "turing-arena/internal/app/public"
)

type PublicHandlers struct {
	publicSvc *apppublic.Service
}

func NewPublicHandlers(publicSvc *apppublic.Service) *PublicHandlers {
	return &PublicHandlers{publicSvc: publicSvc}
}

func (h *PublicHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.publicSvc.Stats(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func WriteHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
