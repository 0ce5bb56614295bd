package access

// LimitedAdminProfile carries the per-capability flags of a non-superuser
// operator, as stored upstream.
type LimitedAdminProfile struct {
	IsActive              bool `json:"is_active"`
	ViewDashboard         bool `json:"view_dashboard"`
	ManageTenants         bool `json:"manage_tenants"`
	ManageSubscriptions   bool `json:"manage_subscriptions"`
	ManagePaymentGateways bool `json:"manage_payment_gateways"`
	ViewReports           bool `json:"view_reports"`
	ManageCommunication   bool `json:"manage_communication"`
	ManageSettings        bool `json:"manage_settings"`
	ManageLimitedAdmins   bool `json:"manage_limited_admins"`
}

// User is the console's view of the signed-in operator.
type User struct {
	ID           int64                `json:"id"`
	Username     string               `json:"username"`
	Email        string               `json:"email"`
	IsSuperuser  bool                 `json:"is_superuser"`
	LimitedAdmin *LimitedAdminProfile `json:"limited_admin_profile,omitempty"`
}

// Can reports whether the user holds the given capability. A nil user or
// a missing profile denies everything; a superuser is allowed everything.
func (u *User) Can(cap Capability) bool {
	if u == nil {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	p := u.LimitedAdmin
	if p == nil {
		return false
	}
	switch cap {
	case CapViewDashboard:
		return p.ViewDashboard
	case CapManageTenants:
		return p.ManageTenants
	case CapManageSubs:
		return p.ManageSubscriptions
	case CapManageGateways:
		return p.ManagePaymentGateways
	case CapViewReports:
		return p.ViewReports
	case CapManageComms:
		return p.ManageCommunication
	case CapManageSettings:
		return p.ManageSettings
	case CapManageLimitedAdmin:
		return p.ManageLimitedAdmins
	default:
		return false
	}
}

// Capabilities returns the capability map sent to the dashboard shell so
// it can decide which navigation entries to draw.
func (u *User) Capabilities() map[Capability]bool {
	caps := make(map[Capability]bool, 8)
	for _, c := range AllCapabilities() {
		caps[c] = u.Can(c)
	}
	return caps
}
