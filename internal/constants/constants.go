package constants

import "time"

// Context keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeySession = "session"
	ContextKeyProject = "project"
)

// Authentication
const (
	MinPasswordLength = 8
	SessionCookieName = "pair_connect_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Matching
const (
	// DeveloperSuggestionLimit is the quorum the developer suggestion engine
	// tries to reach before relaxing the next constraint.
	DeveloperSuggestionLimit = 5

	// SessionSuggestionLimit caps the session recommendation list.
	SessionSuggestionLimit = 10
)

// Sessions
const (
	DefaultSessionDuration = 2 * time.Hour
)
