package auth

import "strings"

// RouteAccess classifies console paths for sign-in redirects.
type RouteAccess struct {
	// Private paths (and their children) require a session.
	Private []string
	// AuthOnly paths are sign-in pages that signed-in users are bounced away from.
	AuthOnly []string
	// LoginPath is where anonymous visitors of private paths are sent.
	LoginPath string
	// HomePath is where signed-in visitors of auth-only paths are sent.
	HomePath string
}

// DefaultRouteAccess returns the console's route table.
func DefaultRouteAccess() RouteAccess {
	return RouteAccess{
		Private:   []string{"/dashboard", "/profile", "/settings", "/blog-management", "/homepage-management", "/admin"},
		AuthOnly:  []string{"/login", "/register", "/forgot-password", "/reset-password", "/verify"},
		LoginPath: "/login",
		HomePath:  "/dashboard",
	}
}

// Redirect returns where a visitor of path should be sent, or "" when the visit is allowed.
func (r RouteAccess) Redirect(path string, signedIn bool) string {
	switch {
	case !signedIn && matchesAny(path, r.Private):
		return r.LoginPath
	case signedIn && matchesAny(path, r.AuthOnly):
		return r.HomePath
	default:
		return ""
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
