package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	// TokenPrefix is the prefix for all generated admin tokens
	TokenPrefix = "dining_"
)

var (
	ErrMissingToken  = errors.New("missing authorization header")
	ErrMalformed     = errors.New("invalid authorization header format")
	ErrInvalidToken  = errors.New("invalid token")
	ErrNotConfigured = errors.New("admin access is not configured")
)

// GenerateToken creates a new random admin token and the hash to configure.
// Format: dining_ + Base58(SHA256(random_bytes))
func GenerateToken() (rawToken string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", err
	}

	hash := sha256.Sum256(randomBytes)
	rawToken = TokenPrefix + base58.Encode(hash[:])

	return rawToken, HashToken(rawToken), nil
}

// HashToken creates a SHA256 hex hash of a token, the only form that is configured or stored
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidFormat checks the prefix and that the body decodes as a 32 byte base58 value
func ValidFormat(rawToken string) bool {
	body, ok := strings.CutPrefix(rawToken, TokenPrefix)
	if !ok {
		return false
	}
	decoded, err := base58.Decode(body)
	return err == nil && len(decoded) == sha256.Size
}

// TokenChecker validates admin bearer tokens against a configured hash
type TokenChecker struct {
	hash string
}

// NewTokenChecker creates a new token checker. An empty hash disables admin access.
func NewTokenChecker(hash string) *TokenChecker {
	return &TokenChecker{hash: strings.ToLower(strings.TrimSpace(hash))}
}

// Check validates a raw token
func (t *TokenChecker) Check(rawToken string) error {
	if t.hash == "" {
		return ErrNotConfigured
	}
	if !ValidFormat(rawToken) {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(HashToken(rawToken)), []byte(t.hash)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// ParseBearer extracts the token from an Authorization header value
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", ErrMalformed
	}
	return parts[1], nil
}
