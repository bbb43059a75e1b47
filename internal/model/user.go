package model

import "time"

// UserID uniquely identifies a user (guesser)
type UserID string

// User is a minimal identity record; authentication is out of scope,
// callers supply identity
type User struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
