package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/access"
	"github.com/sahabhq/console/internal/auth/jwt"
	"github.com/sahabhq/console/internal/broadcast"
	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/config"
	"github.com/sahabhq/console/internal/console/middleware"
	"github.com/sahabhq/console/internal/console/store"
	"github.com/sahabhq/console/internal/gateway"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// upstreamFake scripts the platform API per test. Handlers are keyed by
// "METHOD /path/" and every call is recorded.
type upstreamFake struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    []string
}

func newUpstream() *upstreamFake {
	return &upstreamFake{handlers: make(map[string]http.HandlerFunc)}
}

func (u *upstreamFake) on(method, path string, h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handlers[method+" "+path] = h
}

// onJSON scripts a fixed JSON response for a route.
func (u *upstreamFake) onJSON(method, path string, status int, body string) {
	u.on(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (u *upstreamFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	u.mu.Lock()
	u.calls = append(u.calls, key)
	h, ok := u.handlers[key]
	u.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "not found"}`))
		return
	}
	h(w, r)
}

// called counts how many times a scripted route was hit.
func (u *upstreamFake) called(method, path string) int {
	key := method + " " + path
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		if c == key {
			n++
		}
	}
	return n
}

// memPrefs is a map-backed preferences store.
type memPrefs struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemPrefs() *memPrefs {
	return &memPrefs{values: make(map[string]string)}
}

func (m *memPrefs) Get(_ context.Context, username, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[username+"/"+key]
	if !ok {
		return "", store.ErrPreferenceNotFound
	}
	return v, nil
}

func (m *memPrefs) List(_ context.Context, username string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string)
	prefix := username + "/"
	for k, v := range m.values {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			out[k[len(prefix):]] = v
		}
	}
	return out, nil
}

func (m *memPrefs) Put(_ context.Context, username, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[username+"/"+key] = value
	return nil
}

func (m *memPrefs) Delete(_ context.Context, username, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, username+"/"+key)
	return nil
}

const superuserJSON = `{"id": 1, "username": "admin", "email": "admin@example.com", "is_superuser": true}`

// harness wires the full console stack, guard included, against a
// scripted upstream.
type harness struct {
	router   *gin.Engine
	upstream *upstreamFake
	sessions *session.MemoryStore
	prefs    *memPrefs
	jwt      *jwt.Service
	testers  gateway.Testers
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	up := newUpstream()
	up.onJSON(http.MethodGet, "/auth/current-user/", http.StatusOK, superuserJSON)

	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client := platform.NewClient(zap.NewNop(), config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, nil)

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: "0123456789abcdef0123456789abcdef",
		Duration:  time.Hour,
	})
	require.NoError(t, err)

	sealer, err := session.NewSealer("")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sessions := session.NewMemoryStore(ctx, zap.NewNop(), sealer, time.Hour)

	resolver := access.NewResolver(zap.NewNop(), client, config.IdentityConfig{
		CacheTTL:  time.Minute,
		CacheSize: 16,
	})
	guard := middleware.NewGuard(zap.NewNop(), jwtService, sessions, resolver, nil)

	d := Deps{
		Logger:   zap.NewNop(),
		Platform: client,
		Sessions: sessions,
		Resolver: resolver,
	}
	prefs := newMemPrefs()
	testers := gateway.NewTesters()
	handlers := &Handlers{
		Auth:          NewAuth(d, jwtService),
		Dashboard:     NewDashboard(d),
		Tenants:       NewTenants(d),
		Plans:         NewPlans(d),
		Subscriptions: NewSubscriptions(d),
		Reports:       NewReports(d),
		Invoices:      NewInvoices(d),
		Broadcasts:    NewBroadcasts(d, broadcast.NewRenderer()),
		Gateways:      NewGateways(d, testers),
		Settings:      NewSettings(d, prefs),
		Admins:        NewAdmins(d),
	}

	router := gin.New()
	router.Use(middleware.Language())
	Register(router, guard, handlers)

	return &harness{
		router:   router,
		upstream: up,
		sessions: sessions,
		prefs:    prefs,
		jwt:      jwtService,
		testers:  testers,
	}
}

// login opens a session directly and returns its bearer token.
func (h *harness) login(t *testing.T) string {
	t.Helper()
	sess := &session.Session{
		ID:           uuid.NewString(),
		Username:     "admin",
		AccessToken:  "upstream-access",
		RefreshToken: "upstream-refresh",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, h.sessions.Create(context.Background(), sess))

	token, err := h.jwt.GenerateToken(sess.ID, sess.Username)
	require.NoError(t, err)
	return token
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	// the display language defaults to Arabic; tests pin English so the
	// fixtures read naturally, and language tests set their own header
	req.Header.Set(cnst.XLang, cnst.LangEN)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func jsonList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
