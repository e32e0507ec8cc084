package order

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, tx sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders (order_id, user_id, provider_id, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.ExecContext(ctx, q, ord.ID, ord.UserID, ord.ProviderID, ord.Status, ord.CreatedAt, ord.UpdatedAt)
	return err
}

func CreateItem(ctx context.Context, tx sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items (order_id, course_id, price, created_at)
	VALUES ($1, $2, $3, $4)`

	_, err := tx.ExecContext(ctx, q, it.OrderID, it.CourseID, it.Price, it.CreatedAt)
	return err
}

func FetchByProviderID(ctx context.Context, db sqlx.ExtContext, providerID string) (Order, error) {
	const q = `SELECT * FROM orders WHERE provider_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, providerID); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func UpdateStatus(ctx context.Context, tx sqlx.ExtContext, id string, status Status, now time.Time) error {
	const q = `UPDATE orders SET status = $2, updated_at = $3 WHERE order_id = $1`

	_, err := tx.ExecContext(ctx, q, id, status, now)
	return err
}
