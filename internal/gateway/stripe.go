package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// StripeTester verifies a Stripe secret key by retrieving the account
// balance, the cheapest authenticated call the API offers.
type StripeTester struct {
	backendURL string
}

// NewStripeTester creates a Stripe connection tester. backendURL
// overrides the API host and is meant for tests; leave it empty in
// production.
func NewStripeTester(backendURL string) *StripeTester {
	return &StripeTester{backendURL: backendURL}
}

func (t *StripeTester) Test(ctx context.Context, config map[string]any) error {
	key := strVal(config, "secret_key")
	if key == "" {
		return ErrMissingCredentials
	}

	var backends *stripe.Backends
	if t.backendURL != "" {
		b := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(t.backendURL),
		})
		backends = &stripe.Backends{API: b, Connect: b, Uploads: b}
	}

	sc := &client.API{}
	sc.Init(key, backends)

	params := &stripe.BalanceParams{Params: stripe.Params{Context: ctx}}
	if _, err := sc.Balance.Get(params); err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			if stripeErr.HTTPStatusCode == http.StatusUnauthorized || stripeErr.HTTPStatusCode == http.StatusForbidden {
				return fmt.Errorf("%w: %s", ErrInvalidCredentials, stripeErr.Msg)
			}
			return fmt.Errorf("stripe returned %d: %s", stripeErr.HTTPStatusCode, stripeErr.Msg)
		}
		return err
	}
	return nil
}
