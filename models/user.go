package models

import "time"

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Admin mirrors the admins table: membership alone grants back-office
// access, the JWT only identifies the user.
type Admin struct {
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
