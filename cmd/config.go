package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StreamIdleTimeout closes subscriber streams that stay idle.
	StreamIdleTimeout time.Duration
	// EventCacheSize bounds the replay cache per subscriber key.
	EventCacheSize int
	// EventCacheMaxAge is the replay horizon for cached events.
	EventCacheMaxAge time.Duration
}
