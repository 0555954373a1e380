package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	QueueTickMS     int `env:"QUEUE_TICK_MS" envDefault:"2000"`
	ReplyDelayMinMS int `env:"REPLY_DELAY_MIN_MS" envDefault:"1000"`
	ReplyDelayMaxMS int `env:"REPLY_DELAY_MAX_MS" envDefault:"6000"`

	// Minimum spacing between inbound frames per connection; 0 disables
	// throttling.
	InboundMinIntervalMS int `env:"INBOUND_MIN_INTERVAL_MS" envDefault:"200"`

	ResponderEndpoint  string `env:"RESPONDER_ENDPOINT" envDefault:"https://api.openai.com/v1/completions"`
	ResponderAPIKey    string `env:"RESPONDER_API_KEY"`
	ResponderModel     string `env:"RESPONDER_MODEL" envDefault:"gpt-3.5-turbo-instruct"`
	ResponderTimeoutMS int    `env:"RESPONDER_TIMEOUT_MS" envDefault:"8000"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c ServerConfig) QueueTick() time.Duration {
	return time.Duration(c.QueueTickMS) * time.Millisecond
}

func (c ServerConfig) ReplyDelayMin() time.Duration {
	return time.Duration(c.ReplyDelayMinMS) * time.Millisecond
}

func (c ServerConfig) ReplyDelayMax() time.Duration {
	return time.Duration(c.ReplyDelayMaxMS) * time.Millisecond
}

func (c ServerConfig) InboundMinInterval() time.Duration {
	return time.Duration(c.InboundMinIntervalMS) * time.Millisecond
}

func (c ServerConfig) ResponderTimeout() time.Duration {
	return time.Duration(c.ResponderTimeoutMS) * time.Millisecond
}
