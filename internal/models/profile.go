package models

import "time"

// Profile represents a sevak (volunteer) account attached to the directory.
type Profile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	City     string    `json:"city"`
	Seva     string    `json:"seva"`
	JoinedAt time.Time `json:"joinedAt"`
}
