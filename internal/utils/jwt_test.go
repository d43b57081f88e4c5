package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestGenerateToken_RoundTrip(t *testing.T) {
	userID := uuid.New()

	tokenString, err := GenerateToken(userID, testSecret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString, testSecret)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, _ := GenerateToken(uuid.New(), testSecret, time.Hour)

	_, err := ValidateToken(tokenString, "a-different-secret")
	assert.Error(t, err)
}

func TestValidateToken_Tampered(t *testing.T) {
	tokenString, _ := GenerateToken(uuid.New(), testSecret, time.Hour)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err := ValidateToken(tampered, testSecret)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	tokenString, _ := GenerateToken(uuid.New(), testSecret, -time.Minute)

	_, err := ValidateToken(tokenString, testSecret)
	assert.Error(t, err)
}
