package models

// Stack is the coarse role classification for a project, session, or user.
type Stack string

const (
	StackFullstack Stack = "Fullstack"
	StackBackend   Stack = "Backend"
	StackFrontend  Stack = "Frontend"
)

// Stacks lists every valid stack value.
var Stacks = []Stack{StackFullstack, StackBackend, StackFrontend}

// IsValid reports whether s is one of the known stack values.
func (s Stack) IsValid() bool {
	switch s {
	case StackFullstack, StackBackend, StackFrontend:
		return true
	}
	return false
}

// Level is a skill tier (e.g. Junior, Mid, Senior). Levels are compared by
// identity, never by name.
type Level struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`
}

// ProgLanguage is a programming language tag shared by users, projects and
// sessions.
type ProgLanguage struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}
