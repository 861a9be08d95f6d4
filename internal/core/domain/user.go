package domain

import (
	"errors"
	"time"
)

// Role gates access to administrator-only operations.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidLogin = errors.New("user not found or invalid credentials")
var ErrInvalidRole = errors.New("role must be USER or ADMIN")

// User is the persisted identity record. There is no password: the
// (name, phone) pair is the login key.
type User struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Identity is the request-scoped, verified view of a User, built from a
// decoded credential. It is never persisted.
type Identity struct {
	UserID int64
	Name   string
	Phone  string
	Role   Role
}

// IsAdmin reports the role *claimed* by the credential. Administrator-gated
// routes must not rely on this alone; the persisted User.Role is the source
// of truth (see middleware.RequireAdmin).
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
