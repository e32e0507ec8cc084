package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/skillupnow/skillupnow/api/web"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/core/token"
	"github.com/skillupnow/skillupnow/core/user"
	"github.com/skillupnow/skillupnow/validate"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks a username/password pair and answers with the
// user record plus a fresh bearer token in the Authorization header.
// Wrong username and wrong password are indistinguishable on purpose.
func HandleLogin(db *sqlx.DB, iss *token.Issuer) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req LoginRequest
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(req); err != nil {
			return weberr.BadRequest(err)
		}

		u, err := user.Fetch(ctx, db, req.Username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotAuthorized(errors.New("invalid credentials"))
			}
			return fmt.Errorf("fetching user[%s]: %w", req.Username, err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("invalid credentials"))
		}

		signed, err := iss.Issue(u.Username, u.Roles())
		if err != nil {
			return fmt.Errorf("issuing token for user[%s]: %w", u.Username, err)
		}
		w.Header().Set("Authorization", "Bearer "+signed)

		return web.Respond(ctx, w, u, http.StatusOK)
	}
}
