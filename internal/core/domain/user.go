package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"credit-app/pkg/apperror"
)

// UserRole gates which routes a caller may use.
type UserRole string

const (
	RoleUser    UserRole = "User"
	RoleAnalyst UserRole = "Analyst"
	RoleAdmin   UserRole = "Admin"
)

// CanReview reports whether the role may read and decide on any credit request.
func (r UserRole) CanReview() bool {
	return r == RoleAnalyst || r == RoleAdmin
}

// User is a requester or staff account.
type User struct {
	Entity
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose
	Role         UserRole   `json:"role"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	IsActive     bool       `json:"is_active"`
}

func NewUser(username, email, passwordHash string, role UserRole) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperror.ValidationField("username", "username cannot be blank")
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperror.ValidationField("email", "email cannot be blank")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, apperror.ValidationField("password_hash", "password hash cannot be blank")
	}

	return &User{
		Entity:       NewEntity(uuid.Nil),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// RecordLogin stamps the last successful login.
func (u *User) RecordLogin(now time.Time) {
	t := now.UTC()
	u.LastLoginAt = &t
	u.Touch(now)
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch(time.Now())
}

func (u *User) Activate() {
	u.IsActive = true
	u.Touch(time.Now())
}
