package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonErrors(t *testing.T) {
	t.Run("common errors are not nil", func(t *testing.T) {
		assert.NotNil(t, ErrNotFound)
		assert.NotNil(t, ErrUnauthorized)
		assert.NotNil(t, ErrForbidden)
		assert.NotNil(t, ErrBadRequest)
		assert.NotNil(t, ErrInternalServer)
	})

	t.Run("common errors have correct message IDs", func(t *testing.T) {
		assert.Equal(t, "ErrorResourceNotFound", ErrNotFound.MessageID)
		assert.Equal(t, "ErrorUnauthorized", ErrUnauthorized.MessageID)
		assert.Equal(t, "ErrorForbidden", ErrForbidden.MessageID)
		assert.Equal(t, "ErrorBadRequest", ErrBadRequest.MessageID)
		assert.Equal(t, "ErrorInternalServer", ErrInternalServer.MessageID)
	})
}

func TestSessionErrors(t *testing.T) {
	sessionErrors := []error{
		ErrorInvalidCredentials,
		ErrorAccountDisabled,
		ErrorSessionExpired,
		ErrorTokenInvalid,
		ErrorPermissionDenied,
	}

	for _, err := range sessionErrors {
		assert.NotNil(t, err)
		assert.IsType(t, &ErrorWithCode{}, err)
	}

	assert.Equal(t, ErrorUnauthorized, ErrorSessionExpired.GetCode())
	assert.Equal(t, ErrorForbidden, ErrorPermissionDenied.GetCode())
	assert.Equal(t, ErrorForbidden, ErrorAccountDisabled.GetCode())
}

func TestDomainErrors(t *testing.T) {
	domainErrors := []error{
		ErrorUpstreamUnavailable,
		ErrorUpstreamValidation,
		ErrorTenantNotFound,
		ErrorTenantNameRequired,
		ErrorPlanNotFound,
		ErrorPlanInUse,
		ErrorSubscriptionNotFound,
		ErrorGatewayUnsupported,
		ErrorGatewayExclusive,
		ErrorGatewayMissingCredentials,
		ErrorBroadcastNotFound,
		ErrorBroadcastAlreadySent,
		ErrorBroadcastTemplate,
		ErrorBackupNotFound,
		ErrorScheduleInvalid,
		ErrorAdminNotFound,
	}

	for _, err := range domainErrors {
		assert.NotNil(t, err)
		assert.IsType(t, &ErrorWithCode{}, err)
	}

	assert.Equal(t, ErrorBadGateway, ErrorUpstreamUnavailable.GetCode())
	assert.Equal(t, ErrorConflict, ErrorGatewayExclusive.GetCode())
	assert.Equal(t, ErrorConflict, ErrorPlanInUse.GetCode())
}

func TestSuccessMessageIDs(t *testing.T) {
	ids := []string{
		SuccessLogin, SuccessLogout, SuccessTokenRefreshed,
		SuccessTenantCreated, SuccessTenantUpdated,
		SuccessSubscriptionActivated, SuccessSubscriptionDeactivated,
		SuccessPlanCreated, SuccessPlanDeleted,
		SuccessGatewayEnabled, SuccessGatewayDisabled, SuccessGatewayTestPassed,
		SuccessBroadcastSent, SuccessScheduleSaved, SuccessDataExported,
	}
	for _, id := range ids {
		assert.NotEmpty(t, id)
	}
}
