package course

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Course) error {
	const q = `
	INSERT INTO courses (course_id, name, description, image_url, price, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db.ExecContext(ctx, q, c.ID, c.Name, c.Description, c.ImageURL, c.Price, c.CreatedAt, c.UpdatedAt)
	return err
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Course, error) {
	const q = `SELECT * FROM courses WHERE course_id = $1`

	var c Course
	if err := sqlx.GetContext(ctx, db, &c, q, id); err != nil {
		return Course{}, err
	}
	return c, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Course, error) {
	const q = `SELECT * FROM courses ORDER BY created_at`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, err
	}
	return cs, nil
}

// FetchOwned lists the courses a user has bought, that is the items of
// their successfully fulfilled orders.
func FetchOwned(ctx context.Context, db sqlx.ExtContext, userID int64) ([]Course, error) {
	const q = `
	SELECT c.* FROM courses AS c
	JOIN order_items AS oi ON oi.course_id = c.course_id
	JOIN orders AS o ON o.order_id = oi.order_id
	WHERE o.user_id = $1 AND o.status = 'success'
	ORDER BY oi.created_at`

	cs := []Course{}
	if err := sqlx.SelectContext(ctx, db, &cs, q, userID); err != nil {
		return nil, err
	}
	return cs, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, id string, up CourseUp, now time.Time) error {
	const q = `
	UPDATE courses SET
		name = COALESCE($2, name),
		description = COALESCE($3, description),
		image_url = COALESCE($4, image_url),
		price = COALESCE($5, price),
		updated_at = $6,
		version = version + 1
	WHERE course_id = $1`

	_, err := db.ExecContext(ctx, q, id, up.Name, up.Description, up.ImageURL, up.Price, now)
	return err
}
