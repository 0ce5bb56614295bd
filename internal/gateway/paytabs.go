package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultPayTabsBaseURL = "https://secure.paytabs.sa"

// PayTabsTester verifies a PayTabs profile id and server key with an
// authenticated query probe. PayTabs has no credential-check endpoint,
// so the tester queries a transaction reference that cannot exist: an
// auth failure means bad credentials, any other reply means the key was
// accepted.
type PayTabsTester struct {
	baseURL string
	http    *http.Client
}

// NewPayTabsTester creates a PayTabs connection tester. baseURL and
// httpClient override the defaults and are meant for tests.
func NewPayTabsTester(baseURL string, httpClient *http.Client) *PayTabsTester {
	if baseURL == "" {
		baseURL = defaultPayTabsBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &PayTabsTester{baseURL: baseURL, http: httpClient}
}

func (t *PayTabsTester) Test(ctx context.Context, config map[string]any) error {
	profileID := strVal(config, "profile_id")
	serverKey := strVal(config, "server_key")
	if profileID == "" || serverKey == "" {
		return ErrMissingCredentials
	}

	payload, err := json.Marshal(map[string]any{
		"profile_id": profileID,
		"tran_ref":   "TST0000000000000",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/payment/query", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", serverKey)

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("paytabs unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: paytabs returned %d", ErrInvalidCredentials, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("paytabs returned %d", resp.StatusCode)
	}
	return nil
}
