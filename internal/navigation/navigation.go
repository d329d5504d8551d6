// Package navigation decides which view a path resolves to for the current session.
package navigation

import (
	"strings"

	"mediconnect/internal/domain/entity"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	RootPath     = "/"
)

// views lists the role-tagged views under /{role}/.
var views = map[entity.Role][]string{
	entity.RolePatient: {
		"dashboard",
		"find-doctor",
		"history",
		"profile",
		"medicines",
		"lab-tests",
		"online-consult",
		"clinics",
		"health-records",
	},
	entity.RoleDoctor: {"dashboard", "appointments", "profile"},
	entity.RoleAdmin:  {"dashboard", "users", "settings"},
}

// Decision is the outcome of resolving a path. When Redirect is set, Path is
// the target the caller must go to instead.
type Decision struct {
	Path     string `json:"path"`
	Redirect bool   `json:"redirect"`
}

func render(path string) Decision {
	return Decision{Path: path}
}

func redirect(path string) Decision {
	return Decision{Path: path, Redirect: true}
}

// Resolve applies the routing policy to path for session (nil when signed out).
func Resolve(session *entity.User, path string) Decision {
	path = Normalize(path)

	if path == LoginPath || path == RegisterPath {
		return render(path)
	}

	if session == nil || !session.Role.Valid() {
		return redirect(LoginPath)
	}

	if path == RootPath {
		return redirect(session.Role.DashboardPath())
	}

	role, view, ok := splitView(path)
	if !ok {
		return redirect(session.Role.DashboardPath())
	}
	if role != session.Role {
		// wrong portal is handled like a signed-out visit
		return redirect(LoginPath)
	}
	return render("/" + role.PathSegment() + "/" + view)
}

// Normalize strips query, fragment and trailing slashes. An empty path is the root.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return strings.ToLower(path)
}

// splitView matches /{role}/{view} against the view table.
func splitView(path string) (entity.Role, string, bool) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) != 2 {
		return "", "", false
	}
	role, err := entity.ParseRole(parts[0])
	if err != nil {
		return "", "", false
	}
	for _, view := range views[role] {
		if view == parts[1] {
			return role, view, true
		}
	}
	return "", "", false
}

// Views returns the view paths reachable by role.
func Views(role entity.Role) []string {
	paths := make([]string, 0, len(views[role]))
	for _, view := range views[role] {
		paths = append(paths, "/"+role.PathSegment()+"/"+view)
	}
	return paths
}
