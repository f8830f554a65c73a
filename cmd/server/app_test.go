package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/flashloop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go_L1.yaml"), []byte(`
- keyword: goroutine
  meaning: 경량 스레드
  tags: [core]
- keyword: channel
  meaning: 채널
  tags: [applied]
`), 0o600))

	return &config.Config{
		Server:  config.ServerConfig{Port: 0, LogLevel: "error"},
		Corpus:  config.CorpusConfig{Backend: config.BackendFile, Dir: dir},
		Session: config.SessionConfig{PageSize: 30, RestSeconds: 120, AutoIntervalMS: 1200},
		Speech:  config.SpeechConfig{KODelayMS: 0},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouter(t *testing.T) {
	defer goleak.VerifyNone(t)

	app, err := newApplication(context.Background(), testConfig(t), discardLogger())
	require.NoError(t, err)
	defer app.cleanup()

	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()
	client := srv.Client()

	resp, err := client.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	resp, err = client.Post(srv.URL+"/api/sessions", "application/json",
		strings.NewReader(`{"domain": "go", "level": 1, "seed": 1}`))
	require.NoError(t, err)
	var snap struct {
		State    string `json:"state"`
		Progress struct {
			Total int `json:"total"`
		} `json:"progress"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "round_active", snap.State)
	assert.Equal(t, 2, snap.Progress.Total)
	assert.Equal(t, 1, app.registry.Len())
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	app, err := newApplication(context.Background(), testConfig(t), discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMigrationsRequirePostgres(t *testing.T) {
	t.Parallel()

	err := handleMigrations(context.Background(), testConfig(t), "up", discardLogger())
	assert.ErrorIs(t, err, errNoDatabase)
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadAppConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
