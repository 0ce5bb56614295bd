package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const broadcastsJSON = `[
	{"id": 1, "subject": "Welcome", "content": "Hello", "target": ["all"], "status": "draft"},
	{"id": 2, "subject": "Maintenance", "content": "Window at 02:00", "target": ["1", "2"],
	 "status": "scheduled", "scheduled_at": "2025-09-01T02:00:00Z"},
	{"id": 3, "subject": "Launched", "content": "We are live", "target": ["all"],
	 "status": "sent", "sent_at": "2025-08-01T10:00:00Z"}
]`

func TestBroadcastsList(t *testing.T) {
	h := newHarness(t)
	h.upstream.onJSON(http.MethodGet, "/broadcasts/", http.StatusOK, broadcastsJSON)
	token := h.login(t)

	w := h.do(t, http.MethodGet, "/api/broadcasts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	broadcasts := jsonList(t, w)
	require.Len(t, broadcasts, 3)
	assert.Equal(t, "scheduled", broadcasts[1]["status"])
}

func TestBroadcastCreateDefaultsToDraft(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	var sent map[string]any
	h.upstream.on(http.MethodPost, "/broadcasts/", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &sent)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 4, "subject": "Welcome", "content": "Hello", "target": ["all"], "status": "draft"}`))
	})

	w := h.do(t, http.MethodPost, "/api/broadcasts", token, map[string]any{
		"subject": "Welcome",
		"content": "Hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "SuccessBroadcastCreated", jsonBody(t, w)["message"])

	require.NotNil(t, sent)
	assert.Equal(t, "draft", sent["status"])
	// empty target means everyone
	assert.Equal(t, []any{"all"}, sent["target"])
}

func TestBroadcastCreateCollapsesAllTarget(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	var sent map[string]any
	h.upstream.on(http.MethodPost, "/broadcasts/", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &sent)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 5, "status": "scheduled"}`))
	})

	w := h.do(t, http.MethodPost, "/api/broadcasts", token, map[string]any{
		"subject":      "Maintenance",
		"content":      "Window at 02:00",
		"status":       "scheduled",
		"scheduled_at": "2025-09-01T02:00:00Z",
		"target":       []string{"1", "all", "2"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []any{"all"}, sent["target"])
}

func TestBroadcastCreateRejectsSentStatus(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts", token, map[string]any{
		"subject": "Launched",
		"content": "We are live",
		"status":  "sent",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, h.upstream.called(http.MethodPost, "/broadcasts/"))
}

func TestBroadcastUpdateAlreadySent(t *testing.T) {
	h := newHarness(t)
	h.upstream.onJSON(http.MethodGet, "/broadcasts/", http.StatusOK, broadcastsJSON)
	token := h.login(t)

	w := h.do(t, http.MethodPut, "/api/broadcasts/3", token, map[string]any{
		"subject": "Launched again",
		"content": "Edited",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ErrorBroadcastAlreadySent", jsonBody(t, w)["error"])
	assert.Zero(t, h.upstream.called(http.MethodPut, "/broadcasts/3/"))
}

func TestBroadcastUpdate(t *testing.T) {
	h := newHarness(t)
	h.upstream.onJSON(http.MethodGet, "/broadcasts/", http.StatusOK, broadcastsJSON)
	h.upstream.onJSON(http.MethodPut, "/broadcasts/1/", http.StatusOK,
		`{"id": 1, "subject": "Welcome!", "content": "Hello there", "target": ["all"], "status": "draft"}`)
	token := h.login(t)

	w := h.do(t, http.MethodPut, "/api/broadcasts/1", token, map[string]any{
		"subject": "Welcome!",
		"content": "Hello there",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := jsonBody(t, w)
	assert.Equal(t, "SuccessBroadcastUpdated", body["message"])
	updated, ok := body["broadcast"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Welcome!", updated["subject"])
}

func TestBroadcastSend(t *testing.T) {
	h := newHarness(t)
	h.upstream.onJSON(http.MethodGet, "/broadcasts/", http.StatusOK, broadcastsJSON)
	h.upstream.onJSON(http.MethodPost, "/broadcasts/2/send/", http.StatusOK,
		`{"id": 2, "subject": "Maintenance", "status": "sent", "sent_at": "2025-08-20T02:00:00Z"}`)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/2/send", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SuccessBroadcastSent", jsonBody(t, w)["message"])
	assert.Equal(t, 1, h.upstream.called(http.MethodPost, "/broadcasts/2/send/"))
}

func TestBroadcastSendTwice(t *testing.T) {
	h := newHarness(t)
	h.upstream.onJSON(http.MethodGet, "/broadcasts/", http.StatusOK, broadcastsJSON)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/3/send", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ErrorBroadcastAlreadySent", jsonBody(t, w)["error"])
	assert.Zero(t, h.upstream.called(http.MethodPost, "/broadcasts/3/send/"))
}

func TestBroadcastSendUnknown(t *testing.T) {
	h := newHarness(t)
	h.upstream.onJSON(http.MethodGet, "/broadcasts/", http.StatusOK, `[]`)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/9/send", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ErrorBroadcastNotFound", jsonBody(t, w)["error"])
}

func TestBroadcastDeleteUnknown(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	// the upstream answers 404 for the unscripted delete
	w := h.do(t, http.MethodDelete, "/api/broadcasts/9", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ErrorBroadcastNotFound", jsonBody(t, w)["error"])
}

func TestBroadcastPreviewSampleRecipient(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/preview", token, map[string]any{
		"subject": "Hello {{.CompanyName}}",
		"content": "You are on {{.PlanName}} until {{.EndDate}}.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := jsonBody(t, w)
	assert.Equal(t, "Hello Acme Trading Co.", body["subject"])
	assert.Equal(t, "You are on Pro until 2025-01-01.", body["content"])
}

func TestBroadcastPreviewForTenant(t *testing.T) {
	h := newHarness(t)
	scriptProjection(h)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/preview", token, map[string]any{
		"subject":    "Hello {{.CompanyName}}",
		"content":    "Your {{.PlanName}} plan is {{.Status}}.",
		"company_id": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := jsonBody(t, w)
	assert.Equal(t, "Hello Acme", body["subject"])
	assert.Equal(t, "Your Pro plan is Active.", body["content"])
}

func TestBroadcastPreviewUnknownTenant(t *testing.T) {
	h := newHarness(t)
	scriptProjection(h)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/preview", token, map[string]any{
		"subject":    "Hello {{.CompanyName}}",
		"content":    "Hi",
		"company_id": 99,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ErrorTenantNotFound", jsonBody(t, w)["error"])
}

func TestBroadcastPreviewTemplateError(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/preview", token, map[string]any{
		"subject": "Hello {{.CompanyName",
		"content": "Hi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ErrorBroadcastTemplate", jsonBody(t, w)["error"])
}

func TestBroadcastPreviewUndefinedField(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/api/broadcasts/preview", token, map[string]any{
		"subject": "Hello {{.Nickname}}",
		"content": "Hi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ErrorBroadcastTemplate", jsonBody(t, w)["error"])
}
