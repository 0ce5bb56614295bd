package cnst

const (
	// AppName is the service name used in logs, metrics and traces
	AppName = "console"
	// CommandName is the name of the CLI binary
	CommandName = "console"
)
