// Package token issues and verifies the bearer tokens the API hands
// out at signup and login. Tokens are HS256-signed and live for a
// fixed TTL; there is no revocation, so a password change does not cut
// previously issued tokens short.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skillupnow/skillupnow/config"
	"github.com/skillupnow/skillupnow/core/claims"
)

var (
	ErrExpired = errors.New("token is expired")
	ErrInvalid = errors.New("token is invalid")
)

type tokenClaims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

func NewIssuer(cfg config.Auth) (*Issuer, error) {
	if len(cfg.TokenSecret) < 32 {
		return nil, errors.New("token secret must be at least 32 characters")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &Issuer{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given identity with its roles joined as
// a single comma-separated claim.
func (i *Issuer) Issue(username string, roles []string) (string, error) {
	now := i.now()

	tc := tokenClaims{
		Roles: claims.JoinRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token for user[%s]: %w", username, err)
	}

	return signed, nil
}

// Verify parses and checks a signed token, returning the identity it
// carries.
func (i *Issuer) Verify(signed string) (claims.Claims, error) {
	keyFn := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	}

	var tc tokenClaims
	tok, err := jwt.ParseWithClaims(signed, &tc, keyFn, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return claims.Claims{}, ErrExpired
	case err != nil:
		return claims.Claims{}, ErrInvalid
	case !tok.Valid:
		return claims.Claims{}, ErrInvalid
	}

	return claims.Claims{
		Username: tc.Subject,
		Roles:    claims.SplitRoles(tc.Roles),
	}, nil
}
