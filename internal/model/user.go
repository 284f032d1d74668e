package model

import (
	"strings"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash *string  `json:"-"`
	Phone        *string  `json:"phone"`
	Role         UserRole `json:"role"`
	ExternalID   *string  `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone" validate:"omitempty,e164"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	return validate.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return validate.Struct(r)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

func (r *ChangePasswordRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	var fe fieldErrors
	if r.CurrentPassword == r.NewPassword {
		fe.add("new_password", "must differ from the current password")
	}
	return fe.err()
}

type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	User      *User  `json:"user"`
}

type ListUsersQuery struct {
	PaginationQuery
	Search string `query:"search" validate:"omitempty,max=100"`
	Role   string `query:"role" validate:"omitempty,oneof=user admin"`
}

func (q *ListUsersQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	return nil
}

type UpdateUserRoleRequest struct {
	IDParam
	Role UserRole `json:"role" validate:"required,oneof=user admin"`
}

func (r *UpdateUserRoleRequest) Validate() error {
	return validate.Struct(r)
}

// NormalizeEmail lower-cases and trims an address so lookups match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
