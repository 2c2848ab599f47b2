package v1_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/RosterIO/rosterd/internal/artifacts"
	httpserver "github.com/RosterIO/rosterd/internal/http"
	v1 "github.com/RosterIO/rosterd/internal/http/v1"
	"github.com/RosterIO/rosterd/internal/runs"
	"github.com/RosterIO/rosterd/internal/security/auth"
	"github.com/RosterIO/rosterd/internal/solver"
	"github.com/RosterIO/rosterd/internal/store"
)

const (
	testUser     = "admin"
	testPassword = "s3cret"
	testSecret   = "test-secret"
)

type testEnv struct {
	server *httptest.Server
	runs   *runs.Manager
	store  *store.Store
}

// newTestEnv builds a full server over fresh state. When withAuth is
// false the JWT secret is left empty, which disables the auth
// middleware.
func newTestEnv(t *testing.T, withAuth bool) *testEnv {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	rm := runs.NewManager()
	local := solver.New(nil)

	deps := v1.Deps{
		Store:        st,
		Runs:         rm,
		Artifacts:    artifacts.NewService(t.TempDir()),
		Orchestrator: solver.NewOrchestrator(nil, local, nil),
		Local:        local,
	}
	if withAuth {
		hash, err := auth.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		creds, err := auth.LoadCredentials("", testUser, hash)
		if err != nil {
			t.Fatalf("load credentials: %v", err)
		}
		deps.Credentials = creds
		deps.JWTSecret = []byte(testSecret)
		deps.TokenTTL = time.Hour
	}

	ts := httptest.NewServer(httpserver.NewServer(deps))
	t.Cleanup(ts.Close)
	return &testEnv{server: ts, runs: rm, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.server.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Fatalf("close response body: %v", err)
		}
	}()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": testUser,
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	if out.Token == "" {
		t.Fatal("empty token")
	}
	return out.Token
}
