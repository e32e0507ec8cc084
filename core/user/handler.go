package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/core/claims"
	"github.com/skillupnow/skillupnow/core/token"
	"github.com/skillupnow/skillupnow/validate"
)

// HandleSignup creates a customer or organization account depending on
// the requested userType and hands back a bearer token in the
// Authorization header so the new account is logged in right away.
func HandleSignup(db *sqlx.DB, iss *token.Issuer) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req CreateUserRequest
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(req); err != nil {
			return weberr.BadRequest(err)
		}

		var body interface{}
		var u User

		if req.UserType == TypeCustomer {
			cst, err := CreateCustomer(ctx, db, req)
			if err != nil {
				return err
			}
			body, u = cst, cst.User
		} else {
			org, err := CreateOrganization(ctx, db, req)
			if err != nil {
				return err
			}
			body, u = org, org.User
		}

		signed, err := iss.Issue(u.Username, u.Roles())
		if err != nil {
			return fmt.Errorf("issuing token for user[%s]: %w", u.Username, err)
		}
		w.Header().Set("Authorization", "Bearer "+signed)

		return web.Respond(ctx, w, body, http.StatusOK)
	}
}

func HandleShowCustomer(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		cst, err := FindCustomerByUsername(ctx, db, clm.Username)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, cst, http.StatusOK)
	}
}

// HandleUpdateCustomer overwrites the acting customer's profile and
// echoes the applied values so the caller can confirm what was written.
func HandleUpdateCustomer(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var req ModifyCustomerRequest
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(req); err != nil {
			return weberr.BadRequest(err)
		}

		if err := UpdateCustomer(ctx, db, req, clm.Username); err != nil {
			return err
		}

		return web.Respond(ctx, w, req, http.StatusOK)
	}
}

// HandleUpdateCredential changes the acting user's password. The echo
// carries the request back with every secret nulled.
func HandleUpdateCredential(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var req ModifyCredentialRequest
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(req); err != nil {
			return weberr.BadRequest(err)
		}

		if err := UpdateCredential(ctx, db, req, clm.Username); err != nil {
			return err
		}

		req.CurrentPassword = nil
		req.NewPassword = nil
		req.ConfirmPassword = nil

		return web.Respond(ctx, w, req, http.StatusOK)
	}
}

func HandleShowOrganization(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}

		org, err := FindOrganizationByID(ctx, db, id)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, org, http.StatusOK)
	}
}
