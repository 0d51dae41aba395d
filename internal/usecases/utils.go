package usecases

import (
	"crypto/subtle"
	"net/mail"
	"strings"

	domainerrors "wardrobe.backend/internal/domain/errors"
)

// normalizeEmail trims and lowercases an address and rejects anything that
// is not a bare RFC 5322 address.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domainerrors.ErrInvalidInput
	}
	return email, nil
}

func codesMatch(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(given))) == 1
}
