package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePINFormat(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{"four digits", "1234", false},
		{"six digits", "123456", false},
		{"too short", "123", true},
		{"too long", "1234567", true},
		{"letters", "12ab", true},
		{"empty", "", true},
		{"spaces", "12 4", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePINFormat(tt.pin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndComparePIN(t *testing.T) {
	hash, err := HashPIN("4321", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "4321", hash)

	assert.NoError(t, ComparePIN(hash, "4321"))
	assert.Error(t, ComparePIN(hash, "1234"))
}
