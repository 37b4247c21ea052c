package manifest

import (
	"log/slog"
	"slices"
)

// Identity is the caller on whose behalf a command tree is used.
type Identity struct {
	User  string
	Roles []string
}

// HasRole reports whether role is one of the caller's roles.
func (id Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

// LogValue implements [slog.LogValuer].
func (id Identity) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user", id.User),
		slog.Any("roles", id.Roles),
	)
}
