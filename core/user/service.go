package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/core/cart"
	"github.com/skillupnow/skillupnow/database"
	"golang.org/x/crypto/bcrypt"
)

// CreateCustomer signs up a customer account: one users row, one
// customers row and the empty cart the customer owns, all in one
// transaction. A taken username is a conflict.
func CreateCustomer(ctx context.Context, db *sqlx.DB, req CreateUserRequest) (Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, fmt.Errorf("hashing password: %w", err)
	}

	var cst Customer
	err = database.Transaction(db, func(tx sqlx.ExtContext) error {
		now := time.Now().UTC()

		u, err := create(ctx, tx, User{
			Username:     req.Username,
			PasswordHash: string(hash),
			UserType:     TypeCustomer,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				return weberr.Conflict(fmt.Errorf("username[%s] is already taken: %w", req.Username, err))
			}
			return fmt.Errorf("creating user: %w", err)
		}

		cst = Customer{
			User:      u,
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Email:     req.Email,
			Headline:  req.Headline,
		}

		if err := createCustomerInfo(ctx, tx, cst); err != nil {
			return fmt.Errorf("creating customer profile: %w", err)
		}

		crt, err := cart.Create(ctx, tx, u.ID, u.Username, now)
		if err != nil {
			return fmt.Errorf("creating cart: %w", err)
		}
		cst.Cart = crt

		return nil
	})

	if err != nil {
		return Customer{}, err
	}
	return cst, nil
}

// CreateOrganization signs up an organization account. Organizations
// publish courses rather than buy them, so no cart is created.
func CreateOrganization(ctx context.Context, db *sqlx.DB, req CreateUserRequest) (Organization, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Organization{}, fmt.Errorf("hashing password: %w", err)
	}

	var org Organization
	err = database.Transaction(db, func(tx sqlx.ExtContext) error {
		now := time.Now().UTC()

		u, err := create(ctx, tx, User{
			Username:     req.Username,
			PasswordHash: string(hash),
			UserType:     TypeOrganization,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				return weberr.Conflict(fmt.Errorf("username[%s] is already taken: %w", req.Username, err))
			}
			return fmt.Errorf("creating user: %w", err)
		}

		org = Organization{
			User:        u,
			Name:        req.Name,
			Website:     req.Website,
			Description: req.Description,
		}

		return createOrganizationInfo(ctx, tx, org)
	})

	if err != nil {
		return Organization{}, err
	}
	return org, nil
}

// FindCustomerByUsername returns the customer with its cart.
func FindCustomerByUsername(ctx context.Context, db *sqlx.DB, username string) (Customer, error) {
	cst, err := fetchCustomer(ctx, db, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, weberr.NotFound(fmt.Errorf("no customer[%s]: %w", username, err))
		}
		return Customer{}, fmt.Errorf("fetching customer[%s]: %w", username, err)
	}

	cst.Cart, err = cart.Fetch(ctx, db, username)
	if err != nil {
		return Customer{}, fmt.Errorf("fetching cart of customer[%s]: %w", username, err)
	}

	return cst, nil
}

// FindOrganizationByID returns the organization with the given numeric id.
func FindOrganizationByID(ctx context.Context, db *sqlx.DB, id int64) (Organization, error) {
	org, err := fetchOrganization(ctx, db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, weberr.NotFound(fmt.Errorf("no organization[%d]: %w", id, err))
		}
		return Organization{}, fmt.Errorf("fetching organization[%d]: %w", id, err)
	}
	return org, nil
}

// UpdateCustomer overwrites the profile fields of the customer acting
// as username. Applying the same request twice lands on the same state.
func UpdateCustomer(ctx context.Context, db *sqlx.DB, req ModifyCustomerRequest, username string) error {
	return database.Transaction(db, func(tx sqlx.ExtContext) error {
		cst, err := fetchCustomer(ctx, tx, username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("no customer[%s]: %w", username, err))
			}
			return fmt.Errorf("fetching customer[%s]: %w", username, err)
		}

		if err := updateCustomerInfo(ctx, tx, cst.ID, req); err != nil {
			return fmt.Errorf("updating customer[%s]: %w", username, err)
		}

		return nil
	})
}

// UpdateCredential replaces the acting user's password hash after
// checking the confirmation and the current password. Nothing is
// written on any failed check. Outstanding tokens keep working until
// they expire.
func UpdateCredential(ctx context.Context, db *sqlx.DB, req ModifyCredentialRequest, username string) error {
	if *req.NewPassword != *req.ConfirmPassword {
		return weberr.BadRequest(errors.New("new password and confirmation do not match"))
	}

	return database.Transaction(db, func(tx sqlx.ExtContext) error {
		u, err := Fetch(ctx, tx, username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("no user[%s]: %w", username, err))
			}
			return fmt.Errorf("fetching user[%s]: %w", username, err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*req.CurrentPassword)); err != nil {
			return weberr.NotAuthorized(errors.New("current password does not match"))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing new password: %w", err)
		}

		if err := updatePasswordHash(ctx, tx, u.ID, string(hash)); err != nil {
			return fmt.Errorf("updating password of user[%s]: %w", username, err)
		}

		return nil
	})
}
