// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is the opaque output of the
// credential transform and is never serialized to clients.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
