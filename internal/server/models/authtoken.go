package models

import "time"

// AuthToken is an opaque bearer credential bound 1:1 to a user. Tokens have
// no expiry; a user keeps the same token across logins until it is reissued.
type AuthToken struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}
