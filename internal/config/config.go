package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Corpus  CorpusConfig  `mapstructure:"corpus" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Speech  SpeechConfig  `mapstructure:"speech"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Corpus backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// CorpusConfig selects where corpus partitions are read from.
type CorpusConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	// Dir is the directory holding corpus files for the file backend.
	Dir string `mapstructure:"dir" validate:"required_if=Backend file"`
	// DatabaseURL is the Postgres DSN for the postgres backend.
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres"`
}

// SessionConfig holds the trainer's pacing defaults.
type SessionConfig struct {
	PageSize       int `mapstructure:"page_size" validate:"gte=1,lte=500"`
	RestSeconds    int `mapstructure:"rest_seconds" validate:"gte=0"`
	AutoIntervalMS int `mapstructure:"auto_interval_ms" validate:"gte=100"`
}

// RestDuration returns the rest length between rounds.
func (s SessionConfig) RestDuration() time.Duration {
	return time.Duration(s.RestSeconds) * time.Second
}

// AutoInterval returns the auto-advance interval.
func (s SessionConfig) AutoInterval() time.Duration {
	return time.Duration(s.AutoIntervalMS) * time.Millisecond
}

// SpeechConfig configures the external text-to-speech command.
type SpeechConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Command is the TTS executable; the utterance text is appended as the
	// last argument.
	Command   string   `mapstructure:"command" validate:"required_if=Enabled true"`
	ArgsEN    []string `mapstructure:"args_en"`
	ArgsKO    []string `mapstructure:"args_ko"`
	KODelayMS int      `mapstructure:"ko_delay_ms" validate:"gte=0"`
}

// KODelay returns the pause between the English and Korean utterances.
func (s SpeechConfig) KODelay() time.Duration {
	return time.Duration(s.KODelayMS) * time.Millisecond
}
