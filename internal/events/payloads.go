package events

import "github.com/phrazzld/flashloop/internal/domain"

// SessionConfigured is the payload of TypeSessionConfigured.
type SessionConfigured struct {
	Corpus      string `json:"corpus"`
	Page        int    `json:"page"`
	SessionMode bool   `json:"session_mode"`
	SeedFixed   bool   `json:"seed_fixed"`
}

// RoundStarted is the payload of TypeRoundStarted.
type RoundStarted struct {
	Round  int    `json:"round"`
	Policy string `json:"policy"`
	Seed   int64  `json:"seed"`
	Total  int    `json:"total"`
}

// CardShown is the payload of TypeCardShown.
type CardShown struct {
	Round int         `json:"round"`
	Index int         `json:"index"`
	Total int         `json:"total"`
	Card  domain.Card `json:"card"`
}

// RestStarted is the payload of TypeRestStarted.
type RestStarted struct {
	AfterRound int `json:"after_round"`
	Seconds    int `json:"seconds"`
}

// SessionEnded is the payload of the completed, halted and exited events.
type SessionEnded struct {
	RoundsCompleted int   `json:"rounds_completed"`
	SeenCount       int   `json:"seen_count"`
	ElapsedMS       int64 `json:"elapsed_ms"`
}
