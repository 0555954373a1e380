package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"turing-arena/internal/arena"
	"turing-arena/internal/config"
	"turing-arena/internal/logging"
	"turing-arena/internal/responder"
	httptransport "turing-arena/internal/transport/http"
	"turing-arena/internal/ws"
)

func main() {
	appCfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(appCfg.Log)
	cfg := appCfg.Server

	resp := responder.New(responder.Config{
		Endpoint: cfg.ResponderEndpoint,
		APIKey:   cfg.ResponderAPIKey,
		Model:    cfg.ResponderModel,
		Timeout:  cfg.ResponderTimeout(),
	})
	manager := arena.NewManager(arena.Config{
		QueueTick:     cfg.QueueTick(),
		ReplyDelayMin: cfg.ReplyDelayMin(),
		ReplyDelayMax: cfg.ReplyDelayMax(),
	}, resp)
	wsSrv := ws.NewServer(manager, cfg.InboundMinInterval())
	manager.AttachTransport(wsSrv)

	go manager.Run(context.Background())

	r := httptransport.NewRouter(manager, wsSrv)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
