package common

import (
	"context"
	"slices"
)

// principal is what RequireAuth learned from the access token.
type principal struct {
	userID string
	roles  []string
}

type principalKey struct{}

func principalFrom(ctx context.Context) principal {
	p, _ := ctx.Value(principalKey{}).(principal)
	return p
}

// WithUserID records the authenticated user on ctx, keeping any roles.
func WithUserID(ctx context.Context, id string) context.Context {
	p := principalFrom(ctx)
	p.userID = id
	return context.WithValue(ctx, principalKey{}, p)
}

// UserID returns the authenticated user, if any.
func UserID(ctx context.Context) (string, bool) {
	p := principalFrom(ctx)
	return p.userID, p.userID != ""
}

// WithRoles records the roles granted by the access token.
func WithRoles(ctx context.Context, roles []string) context.Context {
	p := principalFrom(ctx)
	p.roles = slices.Clone(roles)
	return context.WithValue(ctx, principalKey{}, p)
}

// HasRole reports whether the caller holds at least one of roles.
func HasRole(ctx context.Context, roles ...string) bool {
	granted := principalFrom(ctx).roles
	return slices.ContainsFunc(roles, func(r string) bool { return slices.Contains(granted, r) })
}
