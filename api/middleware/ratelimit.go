package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/rate"
)

// RateLimit rejects clients that exceed the limiter's budget. Applied
// to the unauthenticated signup/login routes only.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				err := errors.New("client exceeded the request rate limit")
				return weberr.NewError(err, "too many requests", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
