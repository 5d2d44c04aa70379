package auth

// AuthorizationContext answers capability queries for one session.
// The zero value and a context built from a nil session are anonymous: every predicate is false.
//
// It holds a pointer to the session rather than a copy of its role and permission sets,
// so predicates always read the session as it is at call time.
type AuthorizationContext struct {
	session   *Session
	superRole string
}

// NewAuthorizationContext builds an AuthorizationContext. An empty superRole means SuperRole.
func NewAuthorizationContext(session *Session, superRole string) AuthorizationContext {
	if superRole == "" {
		superRole = SuperRole
	}
	return AuthorizationContext{session: session, superRole: superRole}
}

// Authenticated reports whether a session is present.
func (a AuthorizationContext) Authenticated() bool {
	return a.session != nil
}

// IsSuperAdmin reports whether the session's roles include the super role.
func (a AuthorizationContext) IsSuperAdmin() bool {
	if a.session == nil {
		return false
	}
	superRole := a.superRole
	if superRole == "" {
		superRole = SuperRole
	}
	for _, r := range a.session.User.Roles {
		if r.Name == superRole {
			return true
		}
	}
	return false
}

// HasPermission reports whether the session holds the named permission.
// Super admins hold every permission.
func (a AuthorizationContext) HasPermission(name string) bool {
	if a.session == nil {
		return false
	}
	if a.IsSuperAdmin() {
		return true
	}
	for _, p := range a.session.User.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the session holds at least one of names.
// Super admins hold every permission, even when names is empty.
func (a AuthorizationContext) HasAnyPermission(names ...string) bool {
	if a.session == nil {
		return false
	}
	if a.IsSuperAdmin() {
		return true
	}
	for _, n := range names {
		if a.HasPermission(n) {
			return true
		}
	}
	return false
}

// CurrentUser returns the session's user profile, or false when anonymous.
func (a AuthorizationContext) CurrentUser() (UserProfile, bool) {
	if a.session == nil {
		return UserProfile{}, false
	}
	return a.session.User, true
}

// Capabilities lists the permission names the session explicitly holds.
func (a AuthorizationContext) Capabilities() []string {
	if a.session == nil {
		return nil
	}
	out := make([]string, 0, len(a.session.User.Permissions))
	for _, p := range a.session.User.Permissions {
		out = append(out, p.Name)
	}
	return out
}
