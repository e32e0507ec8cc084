package weberr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTaxonomyStatuses(t *testing.T) {
	cause := errors.New("boom")

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound(cause), http.StatusNotFound},
		{"conflict", Conflict(cause), http.StatusConflict},
		{"not authorized", NotAuthorized(cause), http.StatusUnauthorized},
		{"bad request", BadRequest(cause), http.StatusBadRequest},
		{"internal", InternalError(cause), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, status, ok := Response(tc.err)
			if !ok {
				t.Fatal("typed error lost its response")
			}
			if status != tc.want {
				t.Fatalf("status %d, want %d", status, tc.want)
			}
			if _, ok := body.(*ErrorResponse); !ok {
				t.Fatalf("unexpected body type %T", body)
			}
			if !errors.Is(tc.err, cause) {
				t.Fatal("cause no longer reachable through the chain")
			}
		})
	}
}

func TestResponseSurvivesWrapping(t *testing.T) {
	err := Conflict(errors.New("dup"))
	wrapped := fmt.Errorf("adding course: %w", err)

	_, status, ok := Response(wrapped)
	if !ok || status != http.StatusConflict {
		t.Fatalf("wrapped error lost its response: ok=%v status=%d", ok, status)
	}
}

func TestUntypedHasNoResponse(t *testing.T) {
	if _, _, ok := Response(errors.New("plain")); ok {
		t.Fatal("plain error should carry no response")
	}
}

func TestFields(t *testing.T) {
	err := NotFound(errors.New("gone"), WithFields(map[string]interface{}{"user": "Rachel"}))

	fields, ok := Fields(err)
	if !ok || fields["user"] != "Rachel" {
		t.Fatalf("fields lost: ok=%v fields=%v", ok, fields)
	}

	if _, ok := Fields(errors.New("plain")); ok {
		t.Fatal("plain error should carry no fields")
	}
}
