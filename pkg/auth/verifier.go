package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCredential means the Authorization header was absent or
	// did not carry a bearer token.
	ErrMissingCredential = errors.New("missing bearer credential")

	// ErrInvalidCredential covers signature failures, expiry and
	// malformed tokens. Callers get this sentinel only; the underlying
	// detail is for server-side logs.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrServerMisconfigured means no verification secret is configured.
	// This is an operator error, not a caller error.
	ErrServerMisconfigured = errors.New("token verification secret not configured")
)

const bearerPrefix = "Bearer "

// Verifier validates bearer tokens issued by the external auth provider
// and extracts the subject identifier from them.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks a raw Authorization header value and returns the token's
// subject. Deterministic given (header, secret, current time).
func (v *Verifier) Verify(headerValue string) (string, error) {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return "", ErrMissingCredential
	}
	if v.secret == "" {
		return "", ErrServerMisconfigured
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		headerValue[len(bearerPrefix):],
		claims,
		func(*jwt.Token) (interface{}, error) { return []byte(v.secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCredential, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject claim", ErrInvalidCredential)
	}

	return claims.Subject, nil
}
