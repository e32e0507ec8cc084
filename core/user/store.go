package user

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

func create(ctx context.Context, tx sqlx.ExtContext, u User) (User, error) {
	const q = `
	INSERT INTO users (username, password_hash, user_type, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING user_id`

	if err := tx.QueryRowxContext(ctx, q, u.Username, u.PasswordHash, u.UserType, u.CreatedAt, u.UpdatedAt).Scan(&u.ID); err != nil {
		return User{}, err
	}
	return u, nil
}

func createCustomerInfo(ctx context.Context, tx sqlx.ExtContext, c Customer) error {
	const q = `
	INSERT INTO customers (user_id, firstname, lastname, email, headline)
	VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.ExecContext(ctx, q, c.ID, c.Firstname, c.Lastname, c.Email, c.Headline)
	return err
}

func createOrganizationInfo(ctx context.Context, tx sqlx.ExtContext, o Organization) error {
	const q = `
	INSERT INTO organizations (user_id, name, website, description)
	VALUES ($1, $2, $3, $4)`

	_, err := tx.ExecContext(ctx, q, o.ID, o.Name, o.Website, o.Description)
	return err
}

// Fetch returns the base identity record for any account kind.
func Fetch(ctx context.Context, db sqlx.ExtContext, username string) (User, error) {
	const q = `SELECT * FROM users WHERE username = $1`

	var u User
	if err := sqlx.GetContext(ctx, db, &u, q, username); err != nil {
		return User{}, err
	}
	return u, nil
}

func fetchCustomer(ctx context.Context, db sqlx.ExtContext, username string) (Customer, error) {
	const q = `
	SELECT u.*, c.firstname, c.lastname, c.email, c.headline
	FROM users AS u
	JOIN customers AS c ON c.user_id = u.user_id
	WHERE u.username = $1`

	var cst Customer
	if err := sqlx.GetContext(ctx, db, &cst, q, username); err != nil {
		return Customer{}, err
	}
	return cst, nil
}

func fetchOrganization(ctx context.Context, db sqlx.ExtContext, id int64) (Organization, error) {
	const q = `
	SELECT u.*, o.name, o.website, o.description
	FROM users AS u
	JOIN organizations AS o ON o.user_id = u.user_id
	WHERE u.user_id = $1`

	var org Organization
	if err := sqlx.GetContext(ctx, db, &org, q, id); err != nil {
		return Organization{}, err
	}
	return org, nil
}

func updateCustomerInfo(ctx context.Context, tx sqlx.ExtContext, userID int64, req ModifyCustomerRequest) error {
	const q = `
	UPDATE customers SET firstname = $2, lastname = $3, email = $4, headline = $5
	WHERE user_id = $1`

	_, err := tx.ExecContext(ctx, q, userID, req.Firstname, req.Lastname, req.Email, req.Headline)
	return err
}

func updatePasswordHash(ctx context.Context, tx sqlx.ExtContext, userID int64, hash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = $3 WHERE user_id = $1`

	_, err := tx.ExecContext(ctx, q, userID, hash, time.Now().UTC())
	return err
}
