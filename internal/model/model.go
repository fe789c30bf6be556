// Package model defines domain entities used by services and repositories.
package model

import "time"

// User is a registered account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"` // unique, case-sensitive
	Password string `json:"password"`
}

// Note is a single stored note.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Claims is the identity carried by an access token.
type Claims struct {
	ID        int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Tokens is the result of a successful authentication.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}
