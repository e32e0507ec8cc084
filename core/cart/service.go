package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillupnow/skillupnow/api/weberr"
	"github.com/skillupnow/skillupnow/core/course"
	"github.com/skillupnow/skillupnow/database"
)

// Fetch returns the cart owned by username with its course list.
func Fetch(ctx context.Context, db *sqlx.DB, username string) (Cart, error) {
	crt, err := fetchByUsername(ctx, db, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, weberr.NotFound(fmt.Errorf("no cart for user[%s]: %w", username, err))
		}
		return Cart{}, fmt.Errorf("fetching cart of user[%s]: %w", username, err)
	}

	crt.Courses, err = fetchCourses(ctx, db, crt.ID)
	if err != nil {
		return Cart{}, fmt.Errorf("fetching cart courses: %w", err)
	}

	return crt, nil
}

// AddCourse puts a course in the owner's cart and bumps the total by
// its price. A course already in the cart is a conflict: silently
// appending would double-charge.
func AddCourse(ctx context.Context, db *sqlx.DB, username string, courseID string) (Cart, error) {
	var out Cart

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		crt, err := fetchForUpdate(ctx, tx, username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("no cart for user[%s]: %w", username, err))
			}
			return fmt.Errorf("fetching cart of user[%s]: %w", username, err)
		}

		crs, err := course.Fetch(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("no course[%s]: %w", courseID, err))
			}
			return fmt.Errorf("fetching course[%s]: %w", courseID, err)
		}

		present, err := contains(ctx, tx, crt.ID, courseID)
		if err != nil {
			return fmt.Errorf("checking cart for course[%s]: %w", courseID, err)
		}
		if present {
			return weberr.Conflict(fmt.Errorf("course[%s] is already in the cart", courseID))
		}

		now := time.Now().UTC()
		if err := insertCourse(ctx, tx, crt.ID, courseID, now); err != nil {
			return fmt.Errorf("adding course[%s] to cart: %w", courseID, err)
		}

		crt.Total += crs.Price
		crt.UpdatedAt = now
		if err := updateTotal(ctx, tx, crt.ID, crt.Total, now); err != nil {
			return fmt.Errorf("updating cart total: %w", err)
		}

		crt.Courses, err = fetchCourses(ctx, tx, crt.ID)
		if err != nil {
			return fmt.Errorf("fetching cart courses: %w", err)
		}

		out = crt
		return nil
	})

	if err != nil {
		return Cart{}, err
	}
	return out, nil
}

// RemoveCourse takes a course out of the owner's cart and lowers the
// total by its price. Removing a course that is not in the cart is an
// error rather than a silent total decrement.
func RemoveCourse(ctx context.Context, db *sqlx.DB, username string, courseID string) (Cart, error) {
	var out Cart

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		crt, err := fetchForUpdate(ctx, tx, username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("no cart for user[%s]: %w", username, err))
			}
			return fmt.Errorf("fetching cart of user[%s]: %w", username, err)
		}

		crs, err := course.Fetch(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("no course[%s]: %w", courseID, err))
			}
			return fmt.Errorf("fetching course[%s]: %w", courseID, err)
		}

		present, err := contains(ctx, tx, crt.ID, courseID)
		if err != nil {
			return fmt.Errorf("checking cart for course[%s]: %w", courseID, err)
		}
		if !present {
			return weberr.NotFound(fmt.Errorf("course[%s] is not in the cart", courseID))
		}

		now := time.Now().UTC()
		if err := deleteCourse(ctx, tx, crt.ID, courseID); err != nil {
			return fmt.Errorf("removing course[%s] from cart: %w", courseID, err)
		}

		crt.Total -= crs.Price
		crt.UpdatedAt = now
		if err := updateTotal(ctx, tx, crt.ID, crt.Total, now); err != nil {
			return fmt.Errorf("updating cart total: %w", err)
		}

		crt.Courses, err = fetchCourses(ctx, tx, crt.ID)
		if err != nil {
			return fmt.Errorf("fetching cart courses: %w", err)
		}

		out = crt
		return nil
	})

	if err != nil {
		return Cart{}, err
	}
	return out, nil
}

// Modify dispatches a ModifyCartRequest to the add or remove path.
func Modify(ctx context.Context, db *sqlx.DB, req ModifyCartRequest) (Cart, error) {
	if req.Delete == 1 {
		return RemoveCourse(ctx, db, req.Username, req.CourseID)
	}
	return AddCourse(ctx, db, req.Username, req.CourseID)
}
