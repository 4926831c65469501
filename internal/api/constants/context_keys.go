package constants

// Context keys set by middleware
const (
	ContextKeyRequestID = "RequestID"
	ContextKeyRawBody   = "rawBody"

	// Decoded request bodies
	ContextKeyHelp    = "help"
	ContextKeyContact = "contact"
)

// Header names
const (
	HeaderRequestID = "X-Request-ID"
)
