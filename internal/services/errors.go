package services

import (
	"errors"
	"fmt"

	"github.com/pairconnect/pair-connect-api/internal/models"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrDeveloperNotFound   = errors.New("developer not found")
	ErrLevelNotFound       = errors.New("level does not exist")
	ErrLanguageNotFound    = errors.New("one or more languages do not exist")
	ErrInvalidStack        = errors.New("invalid stack value")
	ErrAtLeastOneLanguage  = errors.New("at least one language must be selected")
	ErrNotProjectOwner     = errors.New("only the owner of the project can perform this action")
	ErrNotSessionHost      = errors.New("only the host of the session can perform this action")
	ErrAlreadyInterested   = errors.New("user already expressed interest in this session")
	ErrAlreadyParticipant  = errors.New("user is already a participant of this session")
	ErrSessionFull         = errors.New("session participant limit reached")
	ErrInvalidSession      = errors.New("invalid or missing session")
	ErrInvalidUser         = errors.New("invalid or missing user")
	ErrNotificationFailed  = errors.New("notification delivery failed")
	ErrNameRequired        = errors.New("name is required")
	ErrScheduleRequired    = errors.New("schedule time is required")
	ErrCannotJoinOwn       = errors.New("the host cannot join their own session")
)

// ValidationKind identifies one variant of the session reconciliation
// failure taxonomy. Callers match on the kind, not on the message.
type ValidationKind string

const (
	KindIncompatibleStack    ValidationKind = "INCOMPATIBLE_STACK"
	KindAmbiguousStack       ValidationKind = "AMBIGUOUS_STACK"
	KindAmbiguousLanguage    ValidationKind = "AMBIGUOUS_LANGUAGE"
	KindLanguageNotInProject ValidationKind = "LANGUAGE_NOT_IN_PROJECT"
)

// ValidationError is a closed variant type covering every way session
// reconciliation can reject a write.
type ValidationError struct {
	Kind     ValidationKind
	Message  string
	Language string // set for KindLanguageNotInProject
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newIncompatibleStackError(projectStack models.Stack) *ValidationError {
	return &ValidationError{
		Kind:    KindIncompatibleStack,
		Message: fmt.Sprintf("invalid stack: for this project the session must use stack %s", projectStack),
	}
}

func newAmbiguousStackError() *ValidationError {
	return &ValidationError{
		Kind:    KindAmbiguousStack,
		Message: "invalid stack choice: you can only choose Fullstack, Backend, or Frontend",
	}
}

func newAmbiguousLanguageError() *ValidationError {
	return &ValidationError{
		Kind:    KindAmbiguousLanguage,
		Message: "the project has multiple languages; the session must declare which one applies",
	}
}

func newLanguageNotInProjectError(language string) *ValidationError {
	return &ValidationError{
		Kind:     KindLanguageNotInProject,
		Message:  fmt.Sprintf("language %s is not part of the project", language),
		Language: language,
	}
}

// AsValidationError unwraps err into a ValidationError when it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
