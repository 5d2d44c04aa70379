package auth

// Package auth contains domain-level types for authentication, sessions, and authorization.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// SuperRole is the default role name that bypasses every permission check.
const SuperRole = "super-admin"

// Role is a named group of capabilities assigned to a user by the content API.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// Permission is a named capability, compared by exact name.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// UserProfile is the snapshot of the signed-in user returned at login or by /auth/me.
// It may go stale until the session is refreshed.
type UserProfile struct {
	ID              int64        `json:"id"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	FullName        string       `json:"full_name,omitempty"`
	Email           string       `json:"email"`
	Phone           *string      `json:"phone,omitempty"`
	Bio             *string      `json:"bio,omitempty"`
	Country         *string      `json:"country,omitempty"`
	State           *string      `json:"state,omitempty"`
	PostalCode      *string      `json:"postal_code,omitempty"`
	EmailVerified   bool         `json:"email_verified"`
	EmailVerifiedAt *string      `json:"email_verified_at,omitempty"`
	ProfileImageURL *string      `json:"profile_image_url,omitempty"`
	Status          string       `json:"status,omitempty"`
	Roles           []Role       `json:"roles"`
	Permissions     []Permission `json:"permissions"`
}

// DisplayName returns the full name, falling back to the joined first and last names.
func (u UserProfile) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Grant is the payload of a successful credential exchange.
type Grant struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        UserProfile `json:"user"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (a UUID).
type Session struct {
	ID          string      `json:"id"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type,omitempty"`
	User        UserProfile `json:"user"`
	Remember    bool        `json:"remember,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// BearerToken returns the value of the Authorization header for this session.
func (s Session) BearerToken() string {
	if s.AccessToken == "" {
		return ""
	}
	return "Bearer " + s.AccessToken
}
