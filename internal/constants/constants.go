package constants

// Session
const (
	SessionCookieName = "ticket_session"
	SessionMaxAge     = 86400 * 7 // 7 days

	SessionKeyUserID  = "user_id"
	SessionKeyEmail   = "user_email"
	SessionKeyIsAdmin = "is_admin"
)

// Gin context keys
const (
	ContextKeyIdentity  = "identity"
	ContextKeyTicketID  = "ticket_id"
	ContextKeyRequestID = "request_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"
