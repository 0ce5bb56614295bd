package cnst

// Navigation hints sent in guard error bodies. The browser dashboard
// routes on these client-side.
const (
	// RedirectLogin is where the dashboard sends unauthenticated users
	RedirectLogin = "/login"
	// RedirectDashboard is where the dashboard sends users denied a
	// capability
	RedirectDashboard = "/dashboard"
)
