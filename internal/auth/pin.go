package auth

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const (
	minPINLength = 4
	maxPINLength = 6
)

// ValidatePINFormat checks that a PIN is 4 to 6 digits. Failures are
// validation errors surfaced inline, never fatal.
func ValidatePINFormat(pin string) error {
	if len(pin) < minPINLength || len(pin) > maxPINLength {
		return apperrors.NewValidationError("pin must be 4 to 6 digits", nil)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("pin must be 4 to 6 digits", nil)
		}
	}
	return nil
}

// HashPIN hashes a plaintext PIN with the configured bcrypt cost.
func HashPIN(pin string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePIN verifies a PIN against its hashed value.
func ComparePIN(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
