package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError     = "error"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"

	// HTTP fields.
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency"
	FieldClientIP  = "client_ip"
	FieldUserAgent = "user_agent"

	// Content fields.
	FieldProjectID = "project_id"
	FieldPostID    = "post_id"
	FieldSlug      = "slug"
	FieldKey       = "key"

	// Translation fields.
	FieldProvider = "provider"
	FieldField    = "field"
	FieldSource   = "source"
	FieldTarget   = "target"
	FieldSent     = "placeholders_sent"
	FieldReceived = "placeholders_received"
	FieldMissing  = "missing_spans"

	// Command fields.
	FieldDryRun = "dry_run"
	FieldCount  = "count"
)
