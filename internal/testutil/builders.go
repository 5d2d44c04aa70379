package testutil

import (
	"time"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
)

// SessionBuilder provides a fluent interface for building sessions in tests.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession starts a signed-in session for a plain user, valid for 30 minutes after TestTime.
func NewSession(id string) *SessionBuilder {
	now := TestTime()
	return &SessionBuilder{sess: domainauth.Session{
		ID:          id,
		AccessToken: "token-" + id,
		TokenType:   "Bearer",
		User: domainauth.UserProfile{
			ID:        1,
			FirstName: "Test",
			LastName:  "User",
			Email:     "user@example.com",
		},
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}}
}

// WithRoles sets the user's roles.
func (b *SessionBuilder) WithRoles(names ...string) *SessionBuilder {
	b.sess.User.Roles = nil
	for i, n := range names {
		b.sess.User.Roles = append(b.sess.User.Roles, domainauth.Role{ID: int64(i + 1), Name: n})
	}
	return b
}

// WithPermissions sets the user's permissions.
func (b *SessionBuilder) WithPermissions(names ...string) *SessionBuilder {
	b.sess.User.Permissions = nil
	for i, n := range names {
		b.sess.User.Permissions = append(b.sess.User.Permissions, domainauth.Permission{ID: int64(i + 1), Name: n})
	}
	return b
}

// ExpiresAt overrides the expiry.
func (b *SessionBuilder) ExpiresAt(t time.Time) *SessionBuilder {
	b.sess.ExpiresAt = t
	return b
}

// WithToken overrides the access token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.sess.AccessToken = token
	return b
}

// Build returns the constructed session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

// BuildPtr returns a pointer to a copy of the constructed session.
func (b *SessionBuilder) BuildPtr() *domainauth.Session {
	s := b.sess
	return &s
}
