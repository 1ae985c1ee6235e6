// Package utils holds small helpers shared across features.
package utils

import "golang.org/x/crypto/bcrypt"

// hashCost is bcrypt's work factor; register/login latency scales with it,
// so change it deliberately.
const hashCost = bcrypt.DefaultCost

// HashPassword hashes a player's password for storage.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
