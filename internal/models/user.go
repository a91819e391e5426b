package models

import "time"

// AuditFields holds the audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// User is the database representation of an identity.
// RefreshToken is nullable: NULL means logged out / never issued.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	FullName     string  `db:"full_name"`
	PasswordHash string  `db:"password_hash"`
	RefreshToken *string `db:"refresh_token"`
	AuditFields
}
