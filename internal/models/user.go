package models

import "time"

// User represents a row of the users table.
type User struct {
	UserID             string     `db:"user_id"`
	Username           string     `db:"username"`
	PasswordHash       string     `db:"password_hash"`
	Email              string     `db:"email"`
	CreatedAt          time.Time  `db:"created_at"`
	DeliveryPreference string     `db:"delivery_preference"`
	LastLogin          *time.Time `db:"last_login"`
	Roles              []string   `db:"roles"`
}
