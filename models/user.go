package models

import (
	"github.com/google/uuid"

	"github.com/Marcelmutsaarts/Dialink/utils"
)

// User represents a registered account. Passwords are stored as bcrypt
// hashes only; the hash is never serialized into API responses.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// NewUser creates a user with a fresh id, hashing the plaintext
// password immediately so it is never retained.
func NewUser(username, password string) (*User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}, nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return utils.CheckPassword(u.PasswordHash, password)
}
