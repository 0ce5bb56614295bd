package i18n

// Common errors
var (
	ErrNotFound       = NewErrorWithCode("ErrorResourceNotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrBadRequest     = NewErrorWithCode("ErrorBadRequest", ErrorBadRequest)
	ErrInternalServer = NewErrorWithCode("ErrorInternalServer", ErrorInternalServer)
)

// Session and sign-in errors
var (
	ErrorInvalidCredentials = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorAccountDisabled    = NewErrorWithCode("ErrorAccountDisabled", ErrorForbidden)
	ErrorSessionExpired     = NewErrorWithCode("ErrorSessionExpired", ErrorUnauthorized)
	ErrorTokenInvalid       = NewErrorWithCode("ErrorTokenInvalid", ErrorUnauthorized)
	ErrorPermissionDenied   = NewErrorWithCode("ErrorPermissionDenied", ErrorForbidden)
)

// Upstream platform errors
var (
	ErrorUpstreamUnavailable = NewErrorWithCode("ErrorUpstreamUnavailable", ErrorBadGateway)
	ErrorUpstreamValidation  = NewErrorWithCode("ErrorUpstreamValidation", ErrorBadRequest)
)

// Tenant related errors
var (
	ErrorTenantNotFound     = NewErrorWithCode("ErrorTenantNotFound", ErrorNotFound)
	ErrorTenantNameRequired = NewErrorWithCode("ErrorTenantNameRequired", ErrorBadRequest)
)

// Plan related errors
var (
	ErrorPlanNotFound     = NewErrorWithCode("ErrorPlanNotFound", ErrorNotFound)
	ErrorPlanNameRequired = NewErrorWithCode("ErrorPlanNameRequired", ErrorBadRequest)
	ErrorPlanInUse        = NewErrorWithCode("ErrorPlanInUse", ErrorConflict)
)

// Subscription related errors
var (
	ErrorSubscriptionNotFound = NewErrorWithCode("ErrorSubscriptionNotFound", ErrorNotFound)
	ErrorSubscriptionDates    = NewErrorWithCode("ErrorSubscriptionDates", ErrorBadRequest)
)

// Payment gateway related errors
var (
	ErrorGatewayUnsupported        = NewErrorWithCode("ErrorGatewayUnsupported", ErrorBadRequest)
	ErrorGatewayExclusive          = NewErrorWithCode("ErrorGatewayExclusive", ErrorConflict)
	ErrorGatewayMissingCredentials = NewErrorWithCode("ErrorGatewayMissingCredentials", ErrorConflict)
	ErrorGatewayTestFailed         = NewErrorWithCode("ErrorGatewayTestFailed", ErrorBadRequest)
)

// Broadcast related errors
var (
	ErrorBroadcastNotFound    = NewErrorWithCode("ErrorBroadcastNotFound", ErrorNotFound)
	ErrorBroadcastAlreadySent = NewErrorWithCode("ErrorBroadcastAlreadySent", ErrorConflict)
	ErrorBroadcastTemplate    = NewErrorWithCode("ErrorBroadcastTemplate", ErrorBadRequest)
)

// Backup and settings related errors
var (
	ErrorBackupNotFound  = NewErrorWithCode("ErrorBackupNotFound", ErrorNotFound)
	ErrorScheduleInvalid = NewErrorWithCode("ErrorScheduleInvalid", ErrorBadRequest)
	ErrorAdminNotFound   = NewErrorWithCode("ErrorAdminNotFound", ErrorNotFound)
	ErrorPreferenceKey   = NewErrorWithCode("ErrorPreferenceKey", ErrorBadRequest)
)

// Report related errors
var (
	ErrorReportRange = NewErrorWithCode("ErrorReportRange", ErrorBadRequest)
)

// Auth success messages
const (
	SuccessLogin          = "SuccessLogin"
	SuccessLogout         = "SuccessLogout"
	SuccessTokenRefreshed = "SuccessTokenRefreshed"
)

// Tenant related success messages
const (
	SuccessTenantCreated = "SuccessTenantCreated"
	SuccessTenantUpdated = "SuccessTenantUpdated"
	SuccessTenantList    = "SuccessTenantList"
	SuccessTenantInfo    = "SuccessTenantInfo"
)

// Subscription related success messages
const (
	SuccessSubscriptionCreated     = "SuccessSubscriptionCreated"
	SuccessSubscriptionUpdated     = "SuccessSubscriptionUpdated"
	SuccessSubscriptionActivated   = "SuccessSubscriptionActivated"
	SuccessSubscriptionDeactivated = "SuccessSubscriptionDeactivated"
)

// Plan related success messages
const (
	SuccessPlanCreated = "SuccessPlanCreated"
	SuccessPlanUpdated = "SuccessPlanUpdated"
	SuccessPlanDeleted = "SuccessPlanDeleted"
)

// Gateway related success messages
const (
	SuccessGatewayUpdated    = "SuccessGatewayUpdated"
	SuccessGatewayEnabled    = "SuccessGatewayEnabled"
	SuccessGatewayDisabled   = "SuccessGatewayDisabled"
	SuccessGatewayTestPassed = "SuccessGatewayTestPassed"
)

// Broadcast related success messages
const (
	SuccessBroadcastCreated = "SuccessBroadcastCreated"
	SuccessBroadcastUpdated = "SuccessBroadcastUpdated"
	SuccessBroadcastDeleted = "SuccessBroadcastDeleted"
	SuccessBroadcastSent    = "SuccessBroadcastSent"
)

// Settings related success messages
const (
	SuccessSettingsSaved  = "SuccessSettingsSaved"
	SuccessBackupStarted  = "SuccessBackupStarted"
	SuccessBackupRestored = "SuccessBackupRestored"
	SuccessBackupDeleted  = "SuccessBackupDeleted"
	SuccessScheduleSaved  = "SuccessScheduleSaved"
	SuccessAdminCreated   = "SuccessAdminCreated"
	SuccessAdminUpdated   = "SuccessAdminUpdated"
	SuccessAdminDeleted   = "SuccessAdminDeleted"
)

// General success messages
const (
	SuccessOperationCompleted = "SuccessOperationCompleted"
	SuccessDataExported       = "SuccessDataExported"
	SuccessDataSaved          = "SuccessDataSaved"
)
