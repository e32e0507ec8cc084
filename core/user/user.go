package user

import (
	"time"

	"github.com/skillupnow/skillupnow/core/cart"
	"github.com/skillupnow/skillupnow/core/claims"
)

type Type string

const (
	TypeCustomer     Type = "CUSTOMER"
	TypeOrganization Type = "ORGANIZATION"
)

// User is the base identity record both account kinds share. The
// password hash never leaves the process.
type User struct {
	ID           int64     `json:"id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	UserType     Type      `json:"userType" db:"user_type"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Roles maps the account kind to the roles encoded in its tokens.
func (u User) Roles() []string {
	if u.UserType == TypeOrganization {
		return []string{claims.RoleOrganization}
	}
	return []string{claims.RoleCustomer}
}

// Customer extends User with profile fields and the cart it owns.
type Customer struct {
	User
	Firstname string    `json:"firstname" db:"firstname"`
	Lastname  string    `json:"lastname" db:"lastname"`
	Email     string    `json:"email" db:"email"`
	Headline  string    `json:"headline" db:"headline"`
	Cart      cart.Cart `json:"cart" db:"-"`
}

// Organization extends User with organization profile fields.
type Organization struct {
	User
	Name        string `json:"name" db:"name"`
	Website     string `json:"website" db:"website"`
	Description string `json:"description" db:"description"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	UserType Type   `json:"userType" validate:"required,oneof=CUSTOMER ORGANIZATION"`

	// Customer profile fields.
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email" validate:"omitempty,email"`
	Headline  string `json:"headline"`

	// Organization profile fields.
	Name        string `json:"name"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
}

type ModifyCustomerRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Headline  string `json:"headline"`
}

// ModifyCredentialRequest carries a password change. The pointer
// fields let the handler null the secrets out of the response echo.
type ModifyCredentialRequest struct {
	CurrentPassword *string `json:"currentPassword" validate:"required"`
	NewPassword     *string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword *string `json:"confirmPassword" validate:"required"`
}
