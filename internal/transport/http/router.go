package httptransport

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	apppublic "turing-arena/internal/app/public"
	"turing-arena/internal/arena"
	"turing-arena/internal/ws"
)

func NewRouter(manager *arena.Manager, wsSrv *ws.Server) *chi.Mux {
	publicHandlers := NewPublicHandlers(apppublic.NewService(manager))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", publicHandlers.Health())
	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/public/stats", publicHandlers.Stats())
	})

	// The websocket endpoint streams; it stays outside the request logger.
	r.Get("/ws", wsSrv.HandleWS)
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 8)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	for _, rt := range routes {
		log.Info().Str("method", rt.Method).Str("route", rt.Path).Msg("route registered")
	}
}
