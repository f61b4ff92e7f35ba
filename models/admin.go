package models

import "time"

// Admin is a back-office account. Customers never hold one; they
// authenticate through Firebase instead.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
