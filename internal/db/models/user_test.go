package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash := HashPassword("secret99")

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotEqual(t, "secret99", hash)
}

func TestVerifyPassword(t *testing.T) {
	testCases := []struct {
		name     string
		stored   string
		password string
		expected bool
	}{
		{
			name:     "hashed match",
			stored:   HashPassword("secret99"),
			password: "secret99",
			expected: true,
		},
		{
			name:     "hashed mismatch",
			stored:   HashPassword("secret99"),
			password: "wrong1234",
			expected: false,
		},
		{
			name:     "legacy plaintext match",
			stored:   "password1",
			password: "password1",
			expected: true,
		},
		{
			name:     "legacy plaintext mismatch",
			stored:   "password1",
			password: "password2",
			expected: false,
		},
		{
			name:     "empty stored credential",
			stored:   "",
			password: "",
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := User{Password: tc.stored}
			assert.Equal(t, tc.expected, user.VerifyPassword(tc.password))
		})
	}
}
