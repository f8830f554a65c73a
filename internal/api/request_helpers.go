package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/domain"
)

// getPathUUID parses the named chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidFormat, paramName)
	}
	return id, nil
}

// getQuerySeconds parses a non-negative number of seconds from the query
// string, returning def when the parameter is absent.
func getQuerySeconds(r *http.Request, name string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number of seconds", domain.ErrInvalidFormat, name)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
