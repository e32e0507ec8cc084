package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
)

// Panics converts a handler panic into an error so the request still
// gets logged and answered instead of killing the connection.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {

			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					err = weberr.InternalError(
						fmt.Errorf("PANIC [%v]", rec),
						weberr.WithFields(map[string]interface{}{
							"trace": string(trace),
						}),
					)
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
