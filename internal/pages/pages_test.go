package pages

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/jobsearch-console/internal/api"
	"github.com/jonathan/jobsearch-console/internal/settings"
	"github.com/jonathan/jobsearch-console/internal/tasks"
	"github.com/stretchr/testify/require"
)

// backend is a scripted fake of the job search API.
type backend struct {
	t *testing.T

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	bodies map[string][]string
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	b := &backend{t: t, routes: map[string]http.HandlerFunc{}, hits: map[string]int{}, bodies: map[string][]string{}}
	server := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(server.Close)
	return b, server
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.RequestURI()
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.hits[key]++
	b.bodies[key] = append(b.bodies[key], string(body))
	h, ok := b.routes[key]
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "no route " + key})
		return
	}
	h(w, r)
}

// on registers a handler for "METHOD /api/v1/path?query".
func (b *backend) on(key string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = h
}

// json registers a fixed JSON response.
func (b *backend) json(key string, status int, body any) {
	b.on(key, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, status, body) })
}

// taskSequence answers a task status route with states in order, repeating the last.
func (b *backend) taskSequence(taskID string, states ...map[string]any) {
	var mu sync.Mutex
	i := 0
	b.on("GET /api/v1/tasks/"+taskID, func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		st := states[min(i, len(states)-1)]
		i++
		mu.Unlock()

		body := map[string]any{"task_id": taskID}
		for k, v := range st {
			body[k] = v
		}
		writeJSON(w, http.StatusOK, body)
	})
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

func (b *backend) lastBody(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	bodies := b.bodies[key]
	if len(bodies) == 0 {
		return ""
	}
	return bodies[len(bodies)-1]
}

func (b *backend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.hits {
		n += c
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func pending() map[string]any { return map[string]any{"state": "PENDING"} }
func started() map[string]any { return map[string]any{"state": "STARTED"} }
func success() map[string]any {
	return map[string]any{"state": "SUCCESS", "result": map[string]any{"ok": true}}
}
func failure(msg string) map[string]any {
	return map[string]any{"state": "FAILURE", "error": msg}
}

// testDeps wires pages to server with fast polling and in-memory settings.
func testDeps(t *testing.T, server *httptest.Server, store settings.Store) Deps {
	t.Helper()
	if store == nil {
		store = settings.NewMemoryStore()
	}
	endpoints := api.NewEndpoints(api.NewClient(server.URL, nil), 1)
	return Deps{
		API:      endpoints,
		Settings: settings.NewService(store, nil),
		Poller: tasks.NewPoller(endpoints, tasks.Policy{
			Interval:   time.Millisecond,
			RetryLimit: 2,
			MaxBackoff: 5 * time.Millisecond,
			MaxWait:    5 * time.Second,
		}, nil),
	}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func storeWith(t *testing.T, s settings.Settings) settings.Store {
	t.Helper()
	store := settings.NewMemoryStore()
	_, err := settings.NewService(store, nil).Save(context.Background(), s)
	require.NoError(t, err)
	return store
}
