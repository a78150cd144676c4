package library

import "github.com/google/uuid"

// Session identifies an authenticated member for the duration of a login.
// Sessions are explicit values passed into every circulation call, so several
// of them can coexist; there is no process-wide "current user".
//
// Authentication itself (usernames, credential checks) belongs to the
// presentation layer; the core only cares about who the session is for.
type Session struct {
	Token    uuid.UUID
	MemberID int64
	Name     string
	Role     Role
}

// NewSession starts a session for the given member with a fresh token.
func NewSession(m Member) *Session {
	return &Session{
		Token:    uuid.New(),
		MemberID: m.ID,
		Name:     m.Name,
		Role:     m.Role,
	}
}
