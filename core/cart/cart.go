package cart

import (
	"time"

	"github.com/skillupnow/skillupnow/core/course"
)

// Cart is a customer's in-progress course selection. Total always
// equals the sum of the prices of Courses: both sides are only ever
// touched inside the same transaction.
type Cart struct {
	ID        int64           `json:"id" db:"cart_id"`
	UserID    int64           `json:"-" db:"user_id"`
	Username  string          `json:"username" db:"username"`
	Total     int64           `json:"total" db:"total"`
	Courses   []course.Course `json:"courses" db:"-"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// ModifyCartRequest routes a single course in or out of a customer's
// cart: Delete 0 adds, Delete 1 removes. Username must name the acting
// customer; the handler rejects requests for anyone else's cart.
type ModifyCartRequest struct {
	Username string `json:"username" validate:"required"`
	CourseID string `json:"courseId" validate:"required"`
	Delete   int    `json:"delete" validate:"gte=0,lte=1"`
}
