package api

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeInvalidParams = "invalid_params"

	// Routing errors
	ErrTypeNotFound         = "not_found"
	ErrTypeMethodNotAllowed = "method_not_allowed"

	// Audit errors
	ErrTypeAuditFailed = "audit_failed"

	// System errors
	ErrTypeTimeout            = "timeout"
	ErrTypeInternal           = "internal_error"
	ErrTypeRateLimit          = "rate_limit_exceeded"
	ErrTypeServiceUnavailable = "service_unavailable"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryClient     ErrorCategory = "client"
	CategoryAudit      ErrorCategory = "audit"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidParams:
		return CategoryValidation
	case ErrTypeNotFound, ErrTypeMethodNotAllowed, ErrTypeRateLimit:
		return CategoryClient
	case ErrTypeAuditFailed:
		return CategoryAudit
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// AuditError is the body returned by the audit endpoint on failure.
type AuditError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// GameInfo describes one audited game.
type GameInfo struct {
	Key       string  `json:"key"`
	TargetRTP float64 `json:"targetRTP"`
	Scenarios int     `json:"scenarios"`
}

// GamesResponse represents the games metadata response
type GamesResponse struct {
	Games          []GameInfo `json:"games"`
	TotalScenarios int        `json:"totalScenarios"`
	EngineVersion  string     `json:"engine_version"`
}
