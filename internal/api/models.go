package api

import (
	"encoding/json"
	"strings"

	"github.com/phrazzld/flashloop/internal/domain/rest"
	"github.com/phrazzld/flashloop/internal/session"
)

// CreateSessionRequest configures a session. Page falls back to the server
// default. Seed may be a number or a string; anything non-numeric means no
// fixed seed.
type CreateSessionRequest struct {
	Domain         string          `json:"domain"           validate:"required"`
	Category       string          `json:"category"`
	Level          int             `json:"level"            validate:"gte=0"`
	Page           *int            `json:"page,omitempty"   validate:"omitempty,gte=1"`
	Seed           json.RawMessage `json:"seed,omitempty"`
	ShuffleRound1  bool            `json:"shuffle_round1"`
	FillFromMaster bool            `json:"fill_from_master"`
	SessionMode    bool            `json:"session_mode"`
}

// Options converts the request into session options.
func (req CreateSessionRequest) Options(defaultPage int) session.Options {
	page := defaultPage
	if req.Page != nil {
		page = *req.Page
	}
	return session.Options{
		Domain:         req.Domain,
		Category:       req.Category,
		Level:          req.Level,
		Page:           page,
		Seed:           session.ParseSeed(strings.Trim(string(req.Seed), `"`)),
		ShuffleRound1:  req.ShuffleRound1,
		FillFromMaster: req.FillFromMaster,
		SessionMode:    req.SessionMode,
	}
}

// RestPhaseResponse is the body of GET /api/rest/phase.
type RestPhaseResponse struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	rest.Status
}
