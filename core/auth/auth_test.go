package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/config"
	"github.com/skillupnow/skillupnow/core/claims"
	"github.com/skillupnow/skillupnow/core/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T) *token.Issuer {
	t.Helper()

	iss, err := token.NewIssuer(config.Auth{
		TokenSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:    time.Hour,
	})
	require.NoError(t, err)
	return iss
}

func TestAuthenticate(t *testing.T) {
	iss := testIssuer(t)

	var got claims.Claims
	handler := Authenticate(iss)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var err error
		got, err = claims.Get(ctx)
		require.NoError(t, err)
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	})

	signed, err := iss.Issue("Rachel", []string{claims.RoleCustomer})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/customer", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	require.NoError(t, handler(r.Context(), httptest.NewRecorder(), r))

	assert.Equal(t, "Rachel", got.Username)
	assert.Equal(t, []string{claims.RoleCustomer}, got.Roles)
}

func TestAuthenticateRejects(t *testing.T) {
	iss := testIssuer(t)

	handler := Authenticate(iss)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		t.Fatal("handler must not run")
		return nil
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer", "Basic abcdef"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/customer", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			err := handler(r.Context(), httptest.NewRecorder(), r)
			require.Error(t, err)

			_, status, ok := weberr.Response(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestOrganization(t *testing.T) {
	handler := Organization()(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodPost, "/courses", nil)

	ctx := claims.Set(context.Background(), claims.Claims{Username: "acme", Roles: []string{claims.RoleOrganization}})
	require.NoError(t, handler(ctx, httptest.NewRecorder(), r))

	ctx = claims.Set(context.Background(), claims.Claims{Username: "Rachel", Roles: []string{claims.RoleCustomer}})
	err := handler(ctx, httptest.NewRecorder(), r)
	require.Error(t, err)

	_, status, ok := weberr.Response(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, status)
}
