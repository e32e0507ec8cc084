package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/core/token"
	"github.com/skillupnow/skillupnow/core/user"
	"golang.org/x/oauth2"
)

type ProviderConfig struct {
	Name        string
	Client      string
	Secret      string
	URL         string
	RedirectURL string
}

type Provider struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// MakeProviders discovers the configured OIDC issuers up front so a
// misconfigured provider fails the process at startup, not at login.
func MakeProviders(ctx context.Context, cfgs []ProviderConfig) (map[string]Provider, error) {
	provs := make(map[string]Provider, len(cfgs))

	for _, cfg := range cfgs {
		p, err := oidc.NewProvider(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("discovering provider %q: %w", cfg.Name, err)
		}

		provs[cfg.Name] = Provider{
			config: oauth2.Config{
				ClientID:     cfg.Client,
				ClientSecret: cfg.Secret,
				RedirectURL:  cfg.RedirectURL,
				Endpoint:     p.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email"},
			},
			verifier: p.Verifier(&oidc.Config{ClientID: cfg.Client}),
		}
	}

	return provs, nil
}

const stateCookie = "oauth_state"

// HandleOauthLogin kicks off the provider flow, binding it to a
// single-use state value in a short-lived cookie.
func HandleOauthLogin(providers map[string]Provider) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		prov, ok := providers[web.Param(r, "provider")]
		if !ok {
			return weberr.NotFound(fmt.Errorf("unknown oauth provider %q", web.Param(r, "provider")))
		}

		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, prov.config.AuthCodeURL(state), http.StatusTemporaryRedirect)
		return nil
	}
}

// HandleOauthCallback exchanges the provider code, creates a customer
// account on first sight of the verified email and redirects back to
// the frontend with a bearer token of our own.
func HandleOauthCallback(db *sqlx.DB, iss *token.Issuer, providers map[string]Provider, redirectURL string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		prov, ok := providers[web.Param(r, "provider")]
		if !ok {
			return weberr.NotFound(fmt.Errorf("unknown oauth provider %q", web.Param(r, "provider")))
		}

		cookie, err := r.Cookie(stateCookie)
		if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
			return weberr.NotAuthorized(errors.New("oauth state mismatch"))
		}

		exch, err := prov.config.Exchange(ctx, r.URL.Query().Get("code"))
		if err != nil {
			return weberr.NotAuthorized(fmt.Errorf("exchanging oauth code: %w", err))
		}

		rawID, ok := exch.Extra("id_token").(string)
		if !ok {
			return weberr.NotAuthorized(errors.New("oauth exchange carries no id token"))
		}

		idToken, err := prov.verifier.Verify(ctx, rawID)
		if err != nil {
			return weberr.NotAuthorized(fmt.Errorf("verifying id token: %w", err))
		}

		var profile struct {
			Email    string `json:"email"`
			Verified bool   `json:"email_verified"`
		}
		if err := idToken.Claims(&profile); err != nil {
			return fmt.Errorf("decoding id token claims: %w", err)
		}
		if !profile.Verified {
			return weberr.NotAuthorized(errors.New("provider email is not verified"))
		}

		u, err := user.Fetch(ctx, db, profile.Email)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// First login: provision a customer keyed by the provider
			// email. The throwaway password keeps the password login
			// path closed until the user sets one.
			cst, err := user.CreateCustomer(ctx, db, user.CreateUserRequest{
				Username: profile.Email,
				Password: uuid.NewString(),
				UserType: user.TypeCustomer,
				Email:    profile.Email,
			})
			if err != nil {
				return fmt.Errorf("provisioning oauth customer: %w", err)
			}
			u = cst.User

		case err != nil:
			return fmt.Errorf("fetching user[%s]: %w", profile.Email, err)
		}

		signed, err := iss.Issue(u.Username, u.Roles())
		if err != nil {
			return fmt.Errorf("issuing token for user[%s]: %w", u.Username, err)
		}

		dest := redirectURL + "#token=" + url.QueryEscape(signed)
		http.Redirect(w, r, dest, http.StatusTemporaryRedirect)
		return nil
	}
}
