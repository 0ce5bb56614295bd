package cnst

// Tracer names used across the service
const (
	// TraceConsole is the tracer name for HTTP handler logic
	TraceConsole = "console/http"
	// TraceUpstream is the tracer name for the platform API client
	TraceUpstream = "console/upstream"
	// TraceBackup is the tracer name for the backup scheduler
	TraceBackup = "console/backup"
)

// Common span names
const (
	// SpanUpstreamRequest represents a single call to the platform API
	SpanUpstreamRequest = "upstream.request"
	// SpanReportExport represents building a CSV export
	SpanReportExport = "report.export"
	// SpanBackupRun represents one scheduled backup attempt
	SpanBackupRun = "backup.run"
)

// Common attribute keys
const (
	AttrUpstreamResource = "upstream.resource"
	AttrUpstreamMethod   = "upstream.method"
	AttrHTTPStatusCode   = "http.status_code"
	AttrErrorReason      = "error.reason"
	AttrSessionID        = "console.session_id"
	AttrReportKind       = "report.kind"
)
