package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companiesJSON = `[
		{"id": 1, "name": "Acme", "domain": "acme.example.com", "specialization": "trading", "owner": "owner@acme.example.com", "created_at": "2024-01-05"},
		{"id": 2, "name": "Beta", "domain": "beta.example.com", "created_at": "2023-03-10T08:00:00Z"},
		{"id": 3, "name": "Gamma", "created_at": "2022-06-01"}
	]`
	subscriptionsJSON = `[
		{"id": 10, "company": 1, "plan": 5, "start_date": "2024-01-10", "end_date": "2099-01-10", "is_active": true},
		{"id": 11, "company": 2, "plan": 5, "start_date": "2020-01-01", "end_date": "2020-12-31", "is_active": true}
	]`
	plansJSON = `[
		{"id": 5, "name": "Pro", "name_ar": "الاحترافية", "type": "Paid", "price_monthly": 99, "price_yearly": 999, "users": 10, "clients": "unlimited", "visible": true}
	]`
)

func scriptProjection(h *harness) {
	h.upstream.onJSON(http.MethodGet, "/companies/", http.StatusOK, companiesJSON)
	h.upstream.onJSON(http.MethodGet, "/subscriptions/", http.StatusOK, subscriptionsJSON)
	h.upstream.onJSON(http.MethodGet, "/plans/", http.StatusOK, plansJSON)
}

func TestTenantsList(t *testing.T) {
	h := newHarness(t)
	scriptProjection(h)
	token := h.login(t)

	w := h.do(t, http.MethodGet, "/api/tenants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	tenants := jsonList(t, w)
	require.Len(t, tenants, 3)

	acme := tenants[0]
	assert.Equal(t, "Acme", acme["name"])
	assert.Equal(t, "Active", acme["status"])
	assert.Equal(t, "Pro", acme["current_plan"])
	assert.Equal(t, "2024-01-10", acme["start_date"])
	assert.Equal(t, "2099-01-10", acme["end_date"])

	beta := tenants[1]
	assert.Equal(t, "Expired", beta["status"])
	assert.Equal(t, "Pro", beta["current_plan"])

	gamma := tenants[2]
	assert.Equal(t, "Deactivated", gamma["status"])
	assert.Equal(t, "", gamma["current_plan"])
	// with no subscription the company's creation date stands in
	assert.Equal(t, "2022-06-01", gamma["start_date"])
}

func TestTenantsListUpstreamDown(t *testing.T) {
	h := newHarness(t)
	scriptProjection(h)
	h.upstream.onJSON(http.MethodGet, "/companies/", http.StatusInternalServerError,
		`{"detail": "database unavailable"}`)
	token := h.login(t)

	w := h.do(t, http.MethodGet, "/api/tenants", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "ErrorUpstreamUnavailable", jsonBody(t, w)["error"])
}

func TestTenantCreateWithSubscription(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	var subBody map[string]any
	h.upstream.onJSON(http.MethodPost, "/companies/", http.StatusCreated,
		`{"id": 7, "name": "Delta", "domain": "delta.example.com"}`)
	h.upstream.on(http.MethodPost, "/subscriptions/", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &subBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 20, "company": 7, "plan": 5, "start_date": "2025-01-01", "end_date": "2026-01-01", "is_active": true}`))
	})

	w := h.do(t, http.MethodPost, "/api/tenants", token, map[string]any{
		"name":   "Delta",
		"domain": "delta.example.com",
		"subscription": map[string]any{
			"plan":       5,
			"start_date": "2025-01-01",
			"end_date":   "2026-01-01",
			"is_active":  true,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// the subscription create rides on the new company's id
	require.NotNil(t, subBody)
	assert.Equal(t, float64(7), subBody["company"])

	body := jsonBody(t, w)
	company, ok := body["company"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Delta", company["name"])
	sub, ok := body["subscription"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(20), sub["id"])
}

func TestTenantCreateRejectsInvertedDates(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/tenants", token, map[string]any{
		"name": "Delta",
		"subscription": map[string]any{
			"plan":       5,
			"start_date": "2026-01-01",
			"end_date":   "2025-01-01",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ErrorSubscriptionDates", jsonBody(t, w)["error"])
	assert.Zero(t, h.upstream.called(http.MethodPost, "/companies/"))
}

func TestTenantUpdateNotFound(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)
	h.upstream.onJSON(http.MethodPut, "/companies/99/", http.StatusNotFound,
		`{"detail": "Not found."}`)

	w := h.do(t, http.MethodPut, "/api/tenants/99", token, map[string]any{
		"name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ErrorTenantNotFound", jsonBody(t, w)["error"])
}

func TestTenantSubscriptionDeactivate(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)
	// two active records for company 1; the later end date is the target
	h.upstream.onJSON(http.MethodGet, "/subscriptions/", http.StatusOK, `[
		{"id": 10, "company": 1, "plan": 5, "start_date": "2023-01-01", "end_date": "2024-01-01", "is_active": true},
		{"id": 12, "company": 1, "plan": 5, "start_date": "2024-01-01", "end_date": "2025-01-01", "is_active": true}
	]`)
	h.upstream.onJSON(http.MethodPost, "/subscriptions/12/deactivate/", http.StatusOK, `{}`)

	w := h.do(t, http.MethodPost, "/api/tenants/1/subscription/deactivate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SuccessSubscriptionDeactivated", jsonBody(t, w)["message"])
	assert.Equal(t, 1, h.upstream.called(http.MethodPost, "/subscriptions/12/deactivate/"))
}

func TestTenantSubscriptionActivateRevivesInactive(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)
	h.upstream.onJSON(http.MethodGet, "/subscriptions/", http.StatusOK, `[
		{"id": 10, "company": 1, "plan": 5, "start_date": "2023-01-01", "end_date": "2024-01-01", "is_active": false}
	]`)
	h.upstream.onJSON(http.MethodPost, "/subscriptions/10/activate/", http.StatusOK, `{}`)

	w := h.do(t, http.MethodPost, "/api/tenants/1/subscription/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SuccessSubscriptionActivated", jsonBody(t, w)["message"])
}

func TestTenantSubscriptionToggleNoSubscription(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)
	h.upstream.onJSON(http.MethodGet, "/subscriptions/", http.StatusOK, `[]`)

	w := h.do(t, http.MethodPost, "/api/tenants/1/subscription/deactivate", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ErrorSubscriptionNotFound", jsonBody(t, w)["error"])
}
