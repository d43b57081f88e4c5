package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	password := "SecurePass123"
	hashedPassword, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestHashPassword_RandomSalt(t *testing.T) {
	password := "SecurePass123"
	first, err := HashPassword(password)
	assert.NoError(t, err)
	second, err := HashPassword(password)
	assert.NoError(t, err)

	// The per-hash salt makes repeated hashes of the same password differ
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash(password, first))
	assert.True(t, CheckPasswordHash(password, second))
}

func TestCheckPasswordHash(t *testing.T) {
	password := "SecurePass123"
	hashedPassword, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("WrongPass123", hashedPassword))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("SecurePass123", "not-a-bcrypt-hash"))
}
