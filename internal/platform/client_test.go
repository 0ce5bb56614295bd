package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(zap.NewNop(), config.UpstreamConfig{
		BaseURL: srv.URL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	}, nil)
	return c, srv
}

func TestClient_AttachesHeaders(t *testing.T) {
	var gotAuth, gotAPIKey, gotAccept string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"results":[],"count":0}`))
	}))

	_, err := c.ListCompanies(context.Background(), "session-token")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
	assert.Equal(t, "test-api-key", gotAPIKey)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_ListEnvelope(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies/", r.URL.Path)
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"Acme"},{"id":2,"name":"Globex"}],"count":2}`))
	}))

	companies, err := c.ListCompanies(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Len(t, companies, 2)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.Equal(t, int64(2), companies[1].ID)
}

func TestClient_ListBareArray(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":7,"name":"Solo"}]`))
	}))

	companies, err := c.ListCompanies(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Len(t, companies, 1)
	assert.Equal(t, "Solo", companies[0].Name)
}

func TestClient_UpstreamError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"name taken","fields":{"name":"taken"}}`))
	}))

	_, err := c.CreateCompany(context.Background(), "tok", Company{Name: "Acme"})
	assert.Error(t, err)

	apiErr, ok := AsError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "name taken", apiErr.Message)
		assert.Equal(t, "taken", apiErr.Fields["name"])
	}
}

func TestClient_NetworkErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(zap.NewNop(), config.UpstreamConfig{BaseURL: url, Timeout: time.Second}, nil)
	_, err := c.ListCompanies(context.Background(), "tok")
	assert.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok)
}

func TestClient_Login(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login/", r.URL.Path)
		// Login must not send a bearer token
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"access":"acc-1","refresh":"ref-1"}`))
	}))

	pair, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	assert.NoError(t, err)
	assert.Equal(t, "acc-1", pair.Access)
	assert.Equal(t, "ref-1", pair.Refresh)
}

func TestClient_CurrentUser(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/current-user/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":5,"username":"alice","is_superuser":false,` +
			`"limited_admin_profile":{"is_active":true,"view_reports":true}}`))
	}))

	user, err := c.CurrentUser(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	if assert.NotNil(t, user.LimitedAdmin) {
		assert.True(t, user.LimitedAdmin.ViewReports)
		assert.False(t, user.LimitedAdmin.ManageTenants)
	}
}

func TestClient_ListAuditLogsPagination(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"results":[{"id":51,"user":"alice","action":{"key":"tenant.update"}}],"count":51}`))
	}))

	logs, count, err := c.ListAuditLogs(context.Background(), "tok", 2, 25)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, 51, count)
	assert.Equal(t, "tenant.update", logs[0].Action.Key)
}

func TestClient_PaymentsDateFilter(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2025-03-31", r.URL.Query().Get("date_to"))
		_, _ = w.Write([]byte(`{"results":[],"count":0}`))
	}))

	_, err := c.ListPayments(context.Background(), "tok", "2025-01-01", "2025-03-31")
	assert.NoError(t, err)
}

func TestResourceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/companies/", "companies"},
		{"/subscriptions/42/activate/", "subscriptions"},
		{"/auth/login/", "auth"},
		{"/", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resourceFromPath(tt.path))
	}
}
