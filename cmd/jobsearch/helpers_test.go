package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeBackend answers "METHOD /api/v1/path?query" routes and counts hits.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	bodies map[string]string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	b := &fakeBackend{routes: map[string]http.HandlerFunc{}, hits: map[string]int{}, bodies: map[string]string{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.RequestURI()
		body, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.hits[key]++
		b.bodies[key] = string(body)
		h, ok := b.routes[key]
		b.mu.Unlock()

		if !ok {
			reply(w, http.StatusNotFound, map[string]string{"detail": "Not found"})
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)
	return b, server
}

func (b *fakeBackend) json(key string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = func(w http.ResponseWriter, _ *http.Request) { reply(w, status, body) }
}

func (b *fakeBackend) task(id string, states ...string) {
	var (
		mu sync.Mutex
		i  int
	)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes["GET /api/v1/tasks/"+id] = func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		state := states[min(i, len(states)-1)]
		i++
		mu.Unlock()
		reply(w, http.StatusOK, map[string]string{"task_id": id, "state": state})
	}
}

func (b *fakeBackend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

func (b *fakeBackend) body(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func (b *fakeBackend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.hits {
		n += c
	}
	return n
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// cli runs the root command in-process against a fake backend with fast
// polling and a temporary settings file.
type cli struct {
	t      *testing.T
	server *httptest.Server
	dir    string
	config string
}

func newCLI(t *testing.T, server *httptest.Server) *cli {
	t.Setenv("JOBSEARCH_REDIS_URL", "")
	t.Setenv("JOBSEARCH_POLL_INTERVAL", "")
	t.Setenv("JOBSEARCH_POLL_RETRY_LIMIT", "")
	t.Setenv("JOBSEARCH_POLL_MAX_WAIT", "")

	dir := t.TempDir()
	config := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"poll_interval":"1ms","poll_max_backoff":"5ms","poll_max_wait":"5s"}`), 0o600))
	return &cli{t: t, server: server, dir: dir, config: config}
}

func (c *cli) settingsPath() string {
	return filepath.Join(c.dir, "settings.json")
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.runContext(ctx, stdin, args...)
}

func (c *cli) runContext(ctx context.Context, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--api-url", c.server.URL,
		"--config", c.config,
		"--settings", c.settingsPath(),
		"--locale", "en-US",
	}, args...))

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}
