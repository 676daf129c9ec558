package auth

import (
	"context"

	"github.com/dukerupert/dukanam/internal/model"
)

type contextKey struct{}

// WithUser returns a context carrying the logged-in user.
func WithUser(ctx context.Context, u model.AuthUser) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

func FromContext(ctx context.Context) (model.AuthUser, bool) {
	u, ok := ctx.Value(contextKey{}).(model.AuthUser)
	return u, ok
}

func Role(ctx context.Context) model.Role {
	u, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return u.Role
}

func IsAdmin(ctx context.Context) bool {
	return Role(ctx) == model.RoleAdmin
}
