package id

import (
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/go-uuid"
)

// DefaultByteLength is the number of random bytes used when no explicit
// length is given. 16 bytes (128 bits) is plenty of entropy for one-time
// values like CSRF state tokens.
const DefaultByteLength = 16

// New generates a url-safe random ID with an optional prefix. The ID
// contains DefaultByteLength bytes of entropy, base64url-encoded without
// padding.
func New(optionalPrefix string) (string, error) {
	return NewWithLen(optionalPrefix, DefaultByteLength)
}

// NewWithLen generates a url-safe random ID with an optional prefix and the
// given number of random bytes.
func NewWithLen(optionalPrefix string, byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf("byte length must be greater than zero")
	}
	data, err := uuid.GenerateRandomBytes(byteLength)
	if err != nil {
		return "", fmt.Errorf("unable to generate id: %w", err)
	}
	id := base64.RawURLEncoding.EncodeToString(data)
	switch {
	case optionalPrefix != "":
		return fmt.Sprintf("%s_%s", optionalPrefix, id), nil
	default:
		return id, nil
	}
}
