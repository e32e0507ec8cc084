package cart

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillupnow/skillupnow/core/course"
)

// Create inserts the empty cart a customer owns from signup on.
func Create(ctx context.Context, db sqlx.ExtContext, userID int64, username string, now time.Time) (Cart, error) {
	const q = `
	INSERT INTO carts (user_id, total, created_at, updated_at)
	VALUES ($1, 0, $2, $2)
	RETURNING cart_id`

	crt := Cart{
		UserID:    userID,
		Username:  username,
		Courses:   []course.Course{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.QueryRowxContext(ctx, q, userID, now).Scan(&crt.ID); err != nil {
		return Cart{}, err
	}
	return crt, nil
}

// fetchForUpdate locks the owner's cart row for the rest of the
// transaction, serializing concurrent mutations of the same cart.
func fetchForUpdate(ctx context.Context, tx sqlx.ExtContext, username string) (Cart, error) {
	const q = `
	SELECT c.cart_id, c.user_id, u.username, c.total, c.created_at, c.updated_at
	FROM carts AS c
	JOIN users AS u ON u.user_id = c.user_id
	WHERE u.username = $1
	FOR UPDATE OF c`

	var crt Cart
	if err := sqlx.GetContext(ctx, tx, &crt, q, username); err != nil {
		return Cart{}, err
	}
	return crt, nil
}

func fetchByUsername(ctx context.Context, db sqlx.ExtContext, username string) (Cart, error) {
	const q = `
	SELECT c.cart_id, c.user_id, u.username, c.total, c.created_at, c.updated_at
	FROM carts AS c
	JOIN users AS u ON u.user_id = c.user_id
	WHERE u.username = $1`

	var crt Cart
	if err := sqlx.GetContext(ctx, db, &crt, q, username); err != nil {
		return Cart{}, err
	}
	return crt, nil
}

func fetchCourses(ctx context.Context, db sqlx.ExtContext, cartID int64) ([]course.Course, error) {
	const q = `
	SELECT co.* FROM courses AS co
	JOIN cart_courses AS cc ON cc.course_id = co.course_id
	WHERE cc.cart_id = $1
	ORDER BY cc.created_at`

	cs := []course.Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q, cartID); err != nil {
		return nil, err
	}
	return cs, nil
}

func contains(ctx context.Context, db sqlx.ExtContext, cartID int64, courseID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM cart_courses WHERE cart_id = $1 AND course_id = $2)`

	var present bool
	if err := sqlx.GetContext(ctx, db, &present, q, cartID, courseID); err != nil {
		return false, err
	}
	return present, nil
}

func insertCourse(ctx context.Context, tx sqlx.ExtContext, cartID int64, courseID string, now time.Time) error {
	const q = `INSERT INTO cart_courses (cart_id, course_id, created_at) VALUES ($1, $2, $3)`

	_, err := tx.ExecContext(ctx, q, cartID, courseID, now)
	return err
}

func deleteCourse(ctx context.Context, tx sqlx.ExtContext, cartID int64, courseID string) error {
	const q = `DELETE FROM cart_courses WHERE cart_id = $1 AND course_id = $2`

	_, err := tx.ExecContext(ctx, q, cartID, courseID)
	return err
}

func updateTotal(ctx context.Context, tx sqlx.ExtContext, cartID int64, total int64, now time.Time) error {
	const q = `UPDATE carts SET total = $2, updated_at = $3 WHERE cart_id = $1`

	_, err := tx.ExecContext(ctx, q, cartID, total, now)
	return err
}

// Flush empties a customer's cart and zeroes the total, both inside
// the caller's transaction. Used when an order is fulfilled.
func Flush(ctx context.Context, tx sqlx.ExtContext, userID int64) error {
	const del = `
	DELETE FROM cart_courses
	WHERE cart_id IN (SELECT cart_id FROM carts WHERE user_id = $1)`

	if _, err := tx.ExecContext(ctx, del, userID); err != nil {
		return err
	}

	const zero = `UPDATE carts SET total = 0, updated_at = $2 WHERE user_id = $1`

	_, err := tx.ExecContext(ctx, zero, userID, time.Now().UTC())
	return err
}
