package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
)

func TestErrorsTranslation(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			"not found",
			weberr.NotFound(errors.New("gone")),
			http.StatusNotFound,
			"the resource could not be found",
		},
		{
			"conflict",
			weberr.Conflict(errors.New("dup")),
			http.StatusConflict,
			"the request conflicts with the current state of the resource",
		},
		{
			"not authorized",
			weberr.NotAuthorized(errors.New("nope")),
			http.StatusUnauthorized,
			"not authorized to access resource",
		},
		{
			"bad request",
			weberr.BadRequest(errors.New("malformed payload")),
			http.StatusBadRequest,
			"malformed payload",
		},
		{
			"untyped errors leak nothing",
			errors.New("pq: relation carts does not exist"),
			http.StatusInternalServerError,
			http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Errors(log)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				return tc.err
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/cart", nil)

			if err := handler(r.Context(), w, r); err != nil {
				t.Fatalf("translated error escaped the middleware: %v", err)
			}

			if w.Code != tc.wantStatus {
				t.Fatalf("status %d, want %d", w.Code, tc.wantStatus)
			}

			var body weberr.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.Error != tc.wantBody {
				t.Fatalf("body %q, want %q", body.Error, tc.wantBody)
			}
		})
	}
}

func TestErrorsPassesSuccessThrough(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	handler := Errors(log)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, map[string]string{"ok": "yes"}, http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/courses", nil)

	if err := handler(r.Context(), w, r); err != nil {
		t.Fatalf("successful request errored: %v", err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want %d", w.Code, http.StatusOK)
	}
}
