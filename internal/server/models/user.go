// Package models holds the persisted domain entities of the service.
package models

import (
	"database/sql"
	"time"
)

// Credentials is the authentication capability of a user: the one-way
// password hash and the timestamp of the last successful login. The
// plaintext password never appears on this type.
type Credentials struct {
	PasswordHash string
	LastLogin    sql.NullTime
}

// Permissions is the authorization capability of a user.
type Permissions struct {
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

// User is an account in the system. Email is the sole login identifier,
// unique, with its domain part lower-cased at creation time.
type User struct {
	ID    string
	Email string
	Name  string
	Credentials
	Permissions
	CreatedAt time.Time
}
