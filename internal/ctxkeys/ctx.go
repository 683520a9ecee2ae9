package ctxkeys

import (
	"context"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey    contextKey = "user"
	ProfileKey contextKey = "profile"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func Profile(ctx context.Context) *model.Profile {
	profile, _ := ctx.Value(ProfileKey).(*model.Profile)
	return profile
}

func WithProfile(ctx context.Context, profile *model.Profile) context.Context {
	return context.WithValue(ctx, ProfileKey, profile)
}

// Principal derives the policy-layer identity from the context user.
// Returns nil for anonymous requests, which the resolver treats as
// unauthenticated.
func Principal(ctx context.Context) *authz.Principal {
	user := User(ctx)
	if user == nil {
		return nil
	}
	return &authz.Principal{ID: user.ID, Role: user.Role}
}
