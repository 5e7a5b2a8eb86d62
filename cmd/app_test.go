package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/creatorhub/internal/config"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/session"
	"github.com/dtroode/creatorhub/internal/testutil"
)

// syncBuffer lets the watch loop write while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testApp struct {
	*app
	out    *syncBuffer
	errOut *syncBuffer
	store  *session.FileStore
}

func newTestApp(t *testing.T, mux *http.ServeMux, stdin string) *testApp {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API:       config.API{URL: srv.URL, Timeout: 5 * time.Second},
		Dashboard: config.Dashboard{PageSize: 10, Refresh: time.Second},
	}
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	out, errOut := &syncBuffer{}, &syncBuffer{}

	a, err := newApp(cfg, testutil.MakeNoopLogger(), store, strings.NewReader(stdin), out, errOut)
	require.NoError(t, err)
	return &testApp{app: a, out: out, errOut: errOut, store: store}
}

func writeData(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"data":%s}`, data)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("decode request body: %v", err)
	}
	return body
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		errOut  string
		out     string
	}{
		{name: "no command", args: nil, wantErr: errUsage, errOut: "Usage: creatorhub <command>"},
		{name: "unknown command", args: []string{"bogus"}, wantErr: errUsage, errOut: "Unknown command: bogus"},
		{name: "missing subcommand", args: []string{"users"}, wantErr: errUsage, errOut: "Usage: creatorhub users <create|delete|list|update>"},
		{name: "unknown subcommand", args: []string{"fans", "delete"}, wantErr: errUsage, errOut: "Unknown fans command: delete"},
		{name: "missing required flag", args: []string{"users", "delete"}, wantErr: errUsage, errOut: "-id is required"},
		{name: "positional leftovers", args: []string{"images", "list", "extra"}, wantErr: errUsage, errOut: "unexpected arguments: extra"},
		{name: "undefined flag", args: []string{"content", "list", "-nope"}, wantErr: errUsage},
		{name: "unknown sort", args: []string{"users", "list", "-sort", "age"}, wantErr: errUsage, errOut: `unknown sort "age"`},
		{name: "invalid fan status", args: []string{"fans", "create", "-name", "Zoe", "-status", "Gold"}, wantErr: errUsage, errOut: `unknown fan status "Gold"`},
		{name: "empty profile update", args: []string{"profile", "update"}, wantErr: errUsage, errOut: "nothing to update"},
		{name: "negative watch", args: []string{"dashboard", "-watch=-1s"}, wantErr: errUsage},
		{name: "zero watch", args: []string{"dashboard", "-watch=0s"}, wantErr: errUsage},
		{name: "watch interval needs equals", args: []string{"dashboard", "-watch", "10ms"}, wantErr: errUsage, errOut: "unexpected arguments: 10ms"},
		{name: "help flag", args: []string{"whoami", "-h"}, wantErr: flag.ErrHelp},
		{name: "version", args: []string{"version"}, out: "Build version: N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, http.NewServeMux(), "")

			err := a.run(context.Background(), tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, a.errOut.String(), tt.errOut)
			assert.Contains(t, a.out.String(), tt.out)
		})
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "42",
		"email": "ana@x.io",
		"exp":   exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not carry a token")
		}
		body := decodeBody(t, r)
		if body["email"] != "ana@x.io" || body["password"] != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid credentials"}`)
			return
		}
		writeData(w, fmt.Sprintf(`{"token":%q,"user":{"id":1,"email":"ana@x.io","role":"admin"}}`, tok))
	})

	a := newTestApp(t, mux, "s3cret\n")
	ctx := context.Background()

	require.NoError(t, a.run(ctx, []string{"login", "-email", "ana@x.io", "-password-stdin"}))
	assert.Contains(t, a.out.String(), "Signed in as ana@x.io")

	sess, err := a.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tok, sess.Token)

	require.NoError(t, a.run(ctx, []string{"whoami"}))
	out := a.out.String()
	assert.Contains(t, out, "admin")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, exp.Format(time.RFC3339))

	require.NoError(t, a.run(ctx, []string{"logout"}))
	assert.Contains(t, a.out.String(), "Signed out")

	err = a.run(ctx, []string{"whoami"})
	require.ErrorIs(t, err, model.ErrNotSignedIn)
}

func TestLogin_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid credentials"}`)
	})

	a := newTestApp(t, mux, "")
	err := a.run(context.Background(), []string{"login", "-email", "ana@x.io", "-password", "bad"})

	apiErr, ok := model.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.Unauthorized())
	assert.Equal(t, `invalid credentials (run "creatorhub login")`, describeError(err))
}

func TestUsersList_FilterSortPaginate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, `[
			{"id":1,"name":"Ana","email":"ana@x.io","role":"admin","performance":80},
			{"id":2,"name":"Bob","email":"bob@x.io","role":"editor","performance":55},
			{"id":3,"name":"Cleo","email":"cleo@x.io","role":"Admin","performance":92}
		]`)
	})

	a := newTestApp(t, mux, "")
	err := a.run(context.Background(), []string{"users", "list", "-role", "admin", "-sort", "performance", "-per-page", "1"})
	require.NoError(t, err)

	out := a.out.String()
	assert.Contains(t, out, "Cleo")
	assert.NotContains(t, out, "Ana")
	assert.NotContains(t, out, "Bob")
	assert.Contains(t, out, "Page 1/2, 2 users")
}

func TestUsersList_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, `[{"id":1,"name":"Ana","performance":80},{"id":2,"name":"Bob","performance":55}]`)
	})

	a := newTestApp(t, mux, "")
	require.NoError(t, a.run(context.Background(), []string{"users", "list", "-q", "55"}))

	out := a.out.String()
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Ana")
	assert.Contains(t, out, "Page 1/1, 1 users")
}

func TestUsersCreate_PerformanceOnlyWhenSet(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []map[string]any
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		writeData(w, `{"id":5,"name":"Ana"}`)
	})

	a := newTestApp(t, mux, "")
	ctx := context.Background()

	require.NoError(t, a.run(ctx, []string{"users", "create", "-name", "Ana", "-email", "ana@x.io"}))
	require.NoError(t, a.run(ctx, []string{"users", "create", "-name", "Ana", "-email", "ana@x.io", "-performance", "0"}))
	assert.Contains(t, a.out.String(), "Created user 5 (Ana)")

	require.Len(t, bodies, 2)
	assert.NotContains(t, bodies[0], "performance")
	assert.Equal(t, 0.0, bodies[1]["performance"])
}

func TestUsersDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"user not found"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	a := newTestApp(t, mux, "")
	ctx := context.Background()

	require.NoError(t, a.run(ctx, []string{"users", "delete", "-id", "7"}))
	assert.Contains(t, a.out.String(), "Deleted user 7")

	err := a.run(ctx, []string{"users", "delete", "-id", "8"})
	assert.Equal(t, "user not found (status 404)", describeError(err))
}

func TestFansList(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fans", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, `[
			{"id":1,"nom":"Zoe","statut":"Spender","totalDepense":150,"derniereActivite":"2024-05-01T11:30:00Z"},
			{"id":2,"nom":"Yan","statut":"Timewaster","totalDepense":"3.5"}
		]`)
	})

	a := newTestApp(t, mux, "")
	a.now = func() time.Time { return now }
	require.NoError(t, a.run(context.Background(), []string{"fans", "list", "-status", "spender"}))

	out := a.out.String()
	assert.Contains(t, out, "Zoe")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "30 min ago")
	assert.NotContains(t, out, "Yan")
}

func TestProfileUpdate_SendsOnlySetFields(t *testing.T) {
	var got map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /users/me", func(w http.ResponseWriter, r *http.Request) {
		got = decodeBody(t, r)
		writeData(w, `{"id":1,"email":"ana@x.io","bio":"hello","city":""}`)
	})

	a := newTestApp(t, mux, "")
	require.NoError(t, a.run(context.Background(), []string{"profile", "update", "-bio", "hello", "-city", ""}))

	assert.Equal(t, map[string]any{"bio": "hello", "city": ""}, got)
	assert.Contains(t, a.out.String(), "hello")
}

func TestMessagesList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /messages", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") != "1" || r.URL.Query().Get("to") != "2" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		writeData(w, `[
			{"id":10,"fromId":1,"toId":2,"content":"hi"},
			{"id":11,"fromId":3,"toId":2,"content":"other"},
			{"id":12,"fromId":2,"toId":1,"content":"hello back"}
		]`)
	})

	a := newTestApp(t, mux, "")
	require.NoError(t, a.run(context.Background(), []string{"messages", "list", "-from", "1", "-to", "2"}))

	out := a.out.String()
	assert.Contains(t, out, "hello back")
	assert.NotContains(t, out, "other")
	assert.Contains(t, out, "Page 1/1, 2 messages")
}

func dashboardMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, `[{"id":1,"name":"Ana","performance":40},{"id":2,"name":"Bob","performance":90}]`)
	})
	mux.HandleFunc("GET /fans", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, `[{"id":1,"nom":"Zoe","statut":"Spender","totalDepense":150}]`)
	})
	mux.HandleFunc("GET /contenu", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, `[]`)
	})
	mux.HandleFunc("GET /images", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"storage offline"}`)
	})
	return mux
}

func TestDashboard_Once(t *testing.T) {
	a := newTestApp(t, dashboardMux(), "")
	require.NoError(t, a.run(context.Background(), []string{"dashboard", "-metrics-addr", "127.0.0.1:0"}))

	out := a.out.String()
	assert.Contains(t, out, "Average employee performance is low (65%). Action required.")
	assert.Contains(t, out, "1 active fans.")
	assert.Contains(t, out, "(trends are estimated)")
	assert.Contains(t, out, "no content yet")
	assert.Contains(t, out, "could not load images")
	assert.Equal(t, 1, strings.Count(out, "Dashboard, generated"))
}

func TestDashboard_WatchUntilCancelled(t *testing.T) {
	tests := []struct {
		name    string
		refresh time.Duration
		args    []string
	}{
		{name: "configured refresh", refresh: 10 * time.Millisecond, args: []string{"dashboard", "-watch"}},
		{name: "explicit interval", refresh: time.Hour, args: []string{"dashboard", "-watch=10ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, dashboardMux(), "")
			a.cfg.Dashboard.Refresh = tt.refresh
			watchDashboard(t, a, tt.args)
		})
	}
}

func watchDashboard(t *testing.T, a *testApp, args []string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.run(ctx, args) }()

	require.Eventually(t, func() bool {
		return strings.Count(a.out.String(), "Dashboard, generated") >= 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchFlag(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    time.Duration
		wantErr bool
	}{
		{name: "absent", args: nil, want: 0},
		{name: "bare uses fallback", args: []string{"-watch"}, want: 30 * time.Second},
		{name: "explicit", args: []string{"-watch=5s"}, want: 5 * time.Second},
		{name: "disabled", args: []string{"-watch=false"}, want: 0},
		{name: "negative", args: []string{"-watch=-5s"}, wantErr: true},
		{name: "garbage", args: []string{"-watch=soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			w := &watchFlag{fallback: 30 * time.Second}
			fs.Var(w, "watch", "")

			err := fs.Parse(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.interval)
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		output string
	}{
		{name: "success", err: nil, code: 0},
		{name: "help", err: flag.ErrHelp, code: 0},
		{name: "usage", err: errUsage, code: exitUsage},
		{name: "not signed in", err: fmt.Errorf("load: %w", model.ErrNotSignedIn), code: 1, output: "Error: not signed in"},
		{name: "timeout", err: &model.TransportError{Method: "GET", URL: "/users", Err: model.ErrTimeout}, code: 1, output: "did not answer in time"},
		{name: "interrupted", err: context.Canceled, code: 1, output: "Error: interrupted"},
		{name: "other", err: errors.New("boom"), code: 1, output: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, exitCode(&buf, tt.err))
			assert.Contains(t, buf.String(), tt.output)
		})
	}
}

func TestLogAppVersion(t *testing.T) {
	var buf bytes.Buffer
	logAppVersion(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}
