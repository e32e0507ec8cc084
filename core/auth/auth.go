// Package auth guards routes with the bearer tokens core/token issues
// and owns the login paths (password and OAuth) that produce them.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/core/claims"
	"github.com/skillupnow/skillupnow/core/token"
)

// Authenticate verifies the Authorization bearer token and stores the
// identity it carries in the request context.
func Authenticate(iss *token.Issuer) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			header := r.Header.Get("Authorization")
			if header == "" {
				return weberr.NotAuthorized(errors.New("authorization header missing"))
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return weberr.NotAuthorized(errors.New("authorization header is not a bearer token"))
			}

			clm, err := iss.Verify(parts[1])
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}

// Organization restricts a route to organization accounts, which are
// the ones allowed to manage the course catalog.
func Organization() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if !claims.IsOrganization(ctx) {
				err := errors.New("route restricted to organization accounts")
				return weberr.NewError(err, "forbidden", http.StatusForbidden)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
