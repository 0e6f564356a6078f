// Package models holds the client-side data types exchanged with the API
// and cached locally. JSON tags match the server's wire format.
package models

import "time"

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult pairs a session token with the user it belongs to.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// StepEntry is one dated step record from the ledger.
type StepEntry struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Date   time.Time `json:"date"`
	Steps  int       `json:"steps"`
}

// DayTotal is one point of the weekly series: a day and its summed steps.
type DayTotal struct {
	Date  time.Time `json:"date"`
	Steps int       `json:"steps"`
}
