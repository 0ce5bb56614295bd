package cnst

// ActionType represents the type of action recorded in the audit log
type ActionType string

const (
	// ActionCreate represents a create action
	ActionCreate ActionType = "Create"
	// ActionUpdate represents an update action
	ActionUpdate ActionType = "Update"
	// ActionDelete represents a delete action
	ActionDelete ActionType = "Delete"
	// ActionEnable represents enabling a payment gateway
	ActionEnable ActionType = "Enable"
	// ActionDisable represents disabling a payment gateway
	ActionDisable ActionType = "Disable"
	// ActionSend represents sending a broadcast
	ActionSend ActionType = "Send"
	// ActionRestore represents restoring a backup
	ActionRestore ActionType = "Restore"
	// ActionLogin represents a console sign-in
	ActionLogin ActionType = "Login"
	// ActionLogout represents a console sign-out
	ActionLogout ActionType = "Logout"
)
