package users

import "time"

// User is one directory record. PasswordHash is the stored credential
// secret (bcrypt); it never leaves this package.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
