package auth

// Package auth contains domain-level types for the admin session.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Credential is the opaque bearer token issued by the content backend.
// An empty Credential means "absent".
type Credential string

// Present reports whether the credential holds a non-empty token.
func (c Credential) Present() bool { return strings.TrimSpace(string(c)) != "" }

// Profile is the cached display identity of the signed-in administrator.
// It is informational only and never used for authorization.
type Profile struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// DisplayName returns the best available label for the profile.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// Session is the server-side record kept for a browser that signed in.
// ID is an opaque session identifier carried in the session cookie.
// ExpiresAt only bounds how long the record is retained in storage; whether
// the credential is still valid is learned from the backend.
type Session struct {
	ID           string     `json:"id"`
	Credential   Credential `json:"credential"`
	Profile      *Profile   `json:"profile,omitempty"`
	ReadMessages []string   `json:"read_messages,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`

	// Extended is set by the loader when ExpiresAt was pushed forward during
	// this request, so the cookie can be reissued with the new lifetime.
	Extended bool `json:"-"`
}

// Authenticated reports whether the session carries a credential.
func (s Session) Authenticated() bool { return s.Credential.Present() }

// HasRead reports whether the message was opened during this session.
func (s Session) HasRead(messageID string) bool {
	return slices.Contains(s.ReadMessages, messageID)
}

// MarkRead records a message as opened. It returns false when nothing changed.
func (s *Session) MarkRead(messageID string) bool {
	if messageID == "" || s.HasRead(messageID) {
		return false
	}
	s.ReadMessages = append(s.ReadMessages, messageID)
	return true
}

// ForgetRead drops a message from the read-state, typically after it was deleted.
func (s *Session) ForgetRead(messageID string) bool {
	idx := slices.Index(s.ReadMessages, messageID)
	if idx < 0 {
		return false
	}
	s.ReadMessages = slices.Delete(s.ReadMessages, idx, idx+1)
	return true
}

// ErrSessionNotFound is returned by session stores when no record exists for an ID.
var ErrSessionNotFound = errors.New("session not found")
