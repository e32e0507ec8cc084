// Package claims carries the authenticated identity through the
// request context. Every service call that acts on behalf of a user
// receives the username explicitly from here rather than reading the
// context itself.
package claims

import (
	"context"
	"errors"
	"strings"
)

const (
	RoleCustomer     = "ROLE_CUSTOMER"
	RoleOrganization = "ROLE_ORGANIZATION"
)

type Claims struct {
	Username string
	Roles    []string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JoinRoles renders roles the way the token encodes them, as a single
// comma-separated claim.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

func SplitRoles(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// IsOrganization reports whether the context identity may manage the
// course catalog.
func IsOrganization(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}
	return c.HasRole(RoleOrganization)
}
