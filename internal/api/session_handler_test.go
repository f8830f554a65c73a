package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashloop/internal/domain/rest"
	"github.com/phrazzld/flashloop/internal/domain/selection"
	"github.com/phrazzld/flashloop/internal/events"
	"github.com/phrazzld/flashloop/internal/platform/corpusfile"
	"github.com/phrazzld/flashloop/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type snapshotBody struct {
	ID       uuid.UUID `json:"id"`
	State    string    `json:"state"`
	Corpus   string    `json:"corpus"`
	Progress struct {
		Round int `json:"round"`
		Index int `json:"index"`
		Total int `json:"total"`
	} `json:"progress"`
	Card *struct {
		Keyword string `json:"keyword"`
	} `json:"card"`
	Auto      bool `json:"auto"`
	SeenCount int  `json:"seen_count"`
	Rest      *struct {
		Remaining int    `json:"remaining_seconds"`
		Phase     string `json:"phase"`
	} `json:"rest"`
	Summary *struct {
		RoundsCompleted int `json:"rounds_completed"`
		SeenCount       int `json:"seen_count"`
	} `json:"summary"`
}

type testServer struct {
	t        *testing.T
	router   http.Handler
	clock    *testClock
	registry *session.Registry
	recorder *events.Recorder
}

// newTestServer serves a five-card python_L1 corpus from a temp dir.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	var cards []string
	for i := 0; i < 5; i++ {
		cards = append(cards, fmt.Sprintf(`{"keyword": "kw-%d", "meaning": "m-%d", "order_index": %d}`, i, i, i))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "python_L1.json"),
		[]byte("["+strings.Join(cards, ",")+"]"),
		0o600,
	))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	selector, err := selection.NewDefaultService()
	require.NoError(t, err)

	clock := &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	recorder := &events.Recorder{}
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(recorder)
	store := corpusfile.New(dir, logger)

	registry := session.NewRegistry(func(id uuid.UUID) (*session.Controller, error) {
		return session.NewController(session.Deps{
			Store:    store,
			Selector: selector,
			Emitter:  emitter,
			Logger:   logger,
			Clock:    clock.Now,
			ID:       id,
		})
	})

	h := NewSessionHandler(registry, 30, rest.NewCountdown(rest.DefaultDuration), logger)
	r := chi.NewRouter()
	r.Route("/api", h.Routes)

	return &testServer{t: t, router: r, clock: clock, registry: registry, recorder: recorder}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) snapshot(w *httptest.ResponseRecorder, wantStatus int) snapshotBody {
	s.t.Helper()
	require.Equal(s.t, wantStatus, w.Code, w.Body.String())
	var snap snapshotBody
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func (s *testServer) create(body string) snapshotBody {
	s.t.Helper()
	return s.snapshot(s.do(http.MethodPost, "/api/sessions", body), http.StatusCreated)
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	snap := s.create(`{"domain": "python", "level": 1, "seed": 7}`)

	assert.NotEqual(t, uuid.Nil, snap.ID)
	assert.Equal(t, "round_active", snap.State)
	assert.Equal(t, "PYTHON·L1", snap.Corpus)
	assert.Equal(t, 1, snap.Progress.Round)
	assert.Equal(t, 5, snap.Progress.Total, "round one keeps corpus order and size")
	require.NotNil(t, snap.Card)
	assert.Equal(t, "kw-0", snap.Card.Keyword)
	assert.False(t, snap.Auto, "manual mode starts without auto-advance")
	assert.Equal(t, 1, s.registry.Len())
	assert.Contains(t, s.recorder.Types(), events.TypeCardShown)
}

func TestCreateSessionRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"empty body", "", http.StatusBadRequest, "Request body is required"},
		{"malformed", `{"domain":`, http.StatusBadRequest, "Invalid request format"},
		{"unknown field", `{"domain": "python", "pages": 3}`, http.StatusBadRequest, "Invalid request format"},
		{"missing domain", `{"level": 1}`, http.StatusBadRequest, "Invalid domain: required field"},
		{"zero page", `{"domain": "python", "page": 0}`, http.StatusBadRequest, "Invalid page: too small"},
		{"negative level", `{"domain": "python", "level": -1}`, http.StatusBadRequest, "Invalid level: too small"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			w := s.do(http.MethodPost, "/api/sessions", tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantError, resp.Error)
			assert.Zero(t, s.registry.Len(), "no session is left behind")
		})
	}
}

func TestManualSessionHalts(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	snap := s.create(`{"domain": "python", "level": 1, "page": 3}`)
	path := "/api/sessions/" + snap.ID.String()

	snap = s.snapshot(s.do(http.MethodPost, path+"/advance", ""), http.StatusOK)
	assert.Equal(t, 1, snap.Progress.Index)

	snap = s.snapshot(s.do(http.MethodPost, path+"/back", ""), http.StatusOK)
	assert.Equal(t, 0, snap.Progress.Index)
	assert.Equal(t, 1, snap.SeenCount, "going back keeps the seen set")

	for i := 0; i < 3; i++ {
		snap = s.snapshot(s.do(http.MethodPost, path+"/advance", ""), http.StatusOK)
	}
	assert.Equal(t, "halted", snap.State)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 1, snap.Summary.RoundsCompleted)
	assert.Equal(t, 3, snap.Summary.SeenCount)

	w := s.do(http.MethodPost, path+"/advance", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionModeRestsAndResumes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	snap := s.create(`{"domain": "python", "level": 1, "page": 5, "seed": "11", "session_mode": true}`)
	path := "/api/sessions/" + snap.ID.String()
	assert.True(t, snap.Auto)

	for i := 0; i < 5; i++ {
		snap = s.snapshot(s.do(http.MethodPost, path+"/advance", ""), http.StatusOK)
	}
	assert.Equal(t, "resting", snap.State)
	require.NotNil(t, snap.Rest)
	assert.Equal(t, 120, snap.Rest.Remaining)
	assert.Equal(t, "inhale", snap.Rest.Phase)

	s.clock.Add(9 * time.Second)
	snap = s.snapshot(s.do(http.MethodGet, path, ""), http.StatusOK)
	assert.Equal(t, "resting", snap.State)
	assert.Equal(t, 111, snap.Rest.Remaining)
	assert.Equal(t, "exhale", snap.Rest.Phase)

	s.clock.Add(2 * time.Minute)
	snap = s.snapshot(s.do(http.MethodGet, path, ""), http.StatusOK)
	assert.Equal(t, "round_active", snap.State, "reading the session applies the elapsed rest")
	assert.Equal(t, 2, snap.Progress.Round)
	assert.Equal(t, 5, snap.Progress.Total)

	s.clock.Add(1500 * time.Millisecond)
	snap = s.snapshot(s.do(http.MethodPost, path+"/tick", ""), http.StatusOK)
	assert.Equal(t, 1, snap.Progress.Index, "auto-advance moved one card")

	snap = s.snapshot(s.do(http.MethodPost, path+"/auto", ""), http.StatusOK)
	assert.False(t, snap.Auto)

	for i := 0; i < 4; i++ {
		snap = s.snapshot(s.do(http.MethodPost, path+"/advance", ""), http.StatusOK)
	}
	require.Equal(t, "resting", snap.State)

	snap = s.snapshot(s.do(http.MethodPost, path+"/skip-rest", ""), http.StatusOK)
	assert.Equal(t, 3, snap.Progress.Round)
	assert.True(t, snap.Auto, "auto-advance is back on for the next round")

	for i := 0; i < snap.Progress.Total; i++ {
		snap = s.snapshot(s.do(http.MethodPost, path+"/advance", ""), http.StatusOK)
	}
	assert.Equal(t, "summary", snap.State)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 3, snap.Summary.RoundsCompleted)
	assert.Equal(t, 5, snap.Summary.SeenCount)

	snap = s.snapshot(s.do(http.MethodPost, path+"/configure", `{"domain": "python", "level": 1, "page": 2}`), http.StatusOK)
	assert.Equal(t, "round_active", snap.State)
	assert.Equal(t, 2, snap.Progress.Total)
	assert.Zero(t, snap.SeenCount, "reconfiguring clears the seen set")
}

func TestSessionErrors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/sessions/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/sessions/not-a-uuid/advance", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	snap := s.create(`{"domain": "python", "level": 1}`)
	w = s.do(http.MethodPost, "/api/sessions/"+snap.ID.String()+"/skip-rest", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Action not allowed")
}

func TestMissingCorpusGivesEmptyRound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	snap := s.create(`{"domain": "rust", "level": 4}`)

	assert.Equal(t, "round_active", snap.State)
	assert.Zero(t, snap.Progress.Total)
	assert.Nil(t, snap.Card)

	snap = s.snapshot(s.do(http.MethodPost, "/api/sessions/"+snap.ID.String()+"/advance", ""), http.StatusOK)
	assert.Equal(t, "halted", snap.State)
}

func TestExitSession(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	snap := s.create(`{"domain": "python", "level": 1}`)
	path := "/api/sessions/" + snap.ID.String()

	w := s.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, s.registry.Len())
	assert.Contains(t, s.recorder.Types(), events.TypeSessionExited)

	w = s.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestPhase(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	tests := []struct {
		query      string
		wantStatus int
		wantPhase  string
		wantLeft   int
	}{
		{"", http.StatusOK, "inhale", 120},
		{"?elapsed=5", http.StatusOK, "hold", 115},
		{"?elapsed=12.5", http.StatusOK, "exhale", 108},
		{"?elapsed=200", http.StatusOK, "hold", 0},
		{"?elapsed=-1", http.StatusBadRequest, "", 0},
		{"?elapsed=soon", http.StatusBadRequest, "", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.query, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/rest/phase"+tc.query, "")
			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus != http.StatusOK {
				return
			}
			var resp struct {
				Phase     string  `json:"phase"`
				Remaining int     `json:"remaining_seconds"`
				Ratio     float64 `json:"ratio"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantPhase, resp.Phase)
			assert.Equal(t, tc.wantLeft, resp.Remaining)
		})
	}
}
