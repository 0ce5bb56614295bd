package access

// Capability names one management area of the console. The set is fixed;
// capabilities are never constructed from user input.
type Capability string

const (
	CapViewDashboard      Capability = "view_dashboard"
	CapManageTenants      Capability = "manage_tenants"
	CapManageSubs         Capability = "manage_subscriptions"
	CapManageGateways     Capability = "manage_payment_gateways"
	CapViewReports        Capability = "view_reports"
	CapManageComms        Capability = "manage_communication"
	CapManageSettings     Capability = "manage_settings"
	CapManageLimitedAdmin Capability = "manage_limited_admins"
)

// AllCapabilities returns every capability in a stable order.
func AllCapabilities() []Capability {
	return []Capability{
		CapViewDashboard,
		CapManageTenants,
		CapManageSubs,
		CapManageGateways,
		CapViewReports,
		CapManageComms,
		CapManageSettings,
		CapManageLimitedAdmin,
	}
}
