package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.QueueTick() != 2*time.Second {
		t.Fatalf("QueueTick() = %v, want 2s", cfg.QueueTick())
	}
	if cfg.ReplyDelayMin() != time.Second || cfg.ReplyDelayMax() != 6*time.Second {
		t.Fatalf("reply delay bounds = [%v, %v], want [1s, 6s]", cfg.ReplyDelayMin(), cfg.ReplyDelayMax())
	}
	if cfg.ResponderModel != "gpt-3.5-turbo-instruct" {
		t.Fatalf("ResponderModel = %q", cfg.ResponderModel)
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("QUEUE_TICK_MS", "500")
	t.Setenv("REPLY_DELAY_MIN_MS", "0")
	t.Setenv("REPLY_DELAY_MAX_MS", "100")
	t.Setenv("INBOUND_MIN_INTERVAL_MS", "0")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.QueueTick() != 500*time.Millisecond {
		t.Fatalf("QueueTick() = %v, want 500ms", cfg.QueueTick())
	}
	if cfg.ReplyDelayMin() != 0 || cfg.ReplyDelayMax() != 100*time.Millisecond {
		t.Fatalf("reply delay bounds = [%v, %v]", cfg.ReplyDelayMin(), cfg.ReplyDelayMax())
	}
	if cfg.InboundMinInterval() != 0 {
		t.Fatalf("InboundMinInterval() = %v, want 0", cfg.InboundMinInterval())
	}
}
