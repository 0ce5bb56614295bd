package gateway

import (
	"context"
	"errors"

	"github.com/sahabhq/console/internal/common/cnst"
)

var (
	// ErrMissingCredentials means the credential bag lacks a required field.
	ErrMissingCredentials = errors.New("gateway credentials missing")
	// ErrInvalidCredentials means the provider rejected the credentials.
	ErrInvalidCredentials = errors.New("gateway rejected credentials")
)

// Tester probes a payment provider with the stored credential bag. A nil
// return means the provider accepted the credentials.
type Tester interface {
	Test(ctx context.Context, config map[string]any) error
}

// Testers maps gateway names to their connection testers.
type Testers map[cnst.GatewayName]Tester

// NewTesters builds the production tester set.
func NewTesters() Testers {
	return Testers{
		cnst.GatewayStripe:  NewStripeTester(""),
		cnst.GatewayPayTabs: NewPayTabsTester("", nil),
	}
}
