package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skillupnow/skillupnow/config"
	"github.com/skillupnow/skillupnow/core/claims"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T, ttl time.Duration) *Issuer {
	t.Helper()

	iss, err := NewIssuer(config.Auth{
		TokenSecret: "0123456789abcdef0123456789abcdef",
		TokenTTL:    ttl,
	})
	require.NoError(t, err)
	return iss
}

func TestNewIssuerRejectsShortSecret(t *testing.T) {
	_, err := NewIssuer(config.Auth{TokenSecret: "short", TokenTTL: time.Hour})
	assert.Error(t, err)
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	iss := testIssuer(t, time.Hour)

	signed, err := iss.Issue("Rachel", []string{claims.RoleCustomer})
	require.NoError(t, err)

	clm, err := iss.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "Rachel", clm.Username)
	assert.Equal(t, []string{claims.RoleCustomer}, clm.Roles)
}

func TestClaimShape(t *testing.T) {
	iss := testIssuer(t, time.Hour)

	signed, err := iss.Issue("Rachel", []string{claims.RoleCustomer, claims.RoleOrganization})
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var body struct {
		Sub   string `json:"sub"`
		Roles string `json:"roles"`
		Exp   int64  `json:"exp"`
		Iat   int64  `json:"iat"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))

	assert.Equal(t, "Rachel", body.Sub)
	assert.Equal(t, "ROLE_CUSTOMER,ROLE_ORGANIZATION", body.Roles)
	assert.Equal(t, body.Iat+3600, body.Exp)
}

func TestVerifyExpired(t *testing.T) {
	iss := testIssuer(t, time.Hour)

	signed, err := iss.Issue("Rachel", []string{claims.RoleCustomer})
	require.NoError(t, err)

	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = iss.Verify(signed)
	assert.True(t, errors.Is(err, ErrExpired), "expected ErrExpired, got %v", err)
}

func TestVerifyTampered(t *testing.T) {
	iss := testIssuer(t, time.Hour)

	signed, err := iss.Issue("Rachel", []string{claims.RoleCustomer})
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = iss.Verify(tampered)
	assert.True(t, errors.Is(err, ErrInvalid), "expected ErrInvalid, got %v", err)
}

func TestVerifyWrongKey(t *testing.T) {
	iss := testIssuer(t, time.Hour)
	other := testIssuer(t, time.Hour)
	other.secret = []byte("ffffffffffffffffffffffffffffffff")

	signed, err := iss.Issue("Rachel", []string{claims.RoleCustomer})
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.Error(t, err)
}
