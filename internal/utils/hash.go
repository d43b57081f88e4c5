package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps offline brute-force expensive while staying fast enough
// for interactive signin.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. The salt is random
// per call, so hashing the same password twice yields different results.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
