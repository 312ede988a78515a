package service

import "errors"

// ErrTokenInvalid is the single outcome for every token-format problem:
// bad signature, malformed structure, or expired timestamp. Callers must
// distinguish it from other error kinds (e.g. store failures) but never
// from each other.
var ErrTokenInvalid = errors.New("token invalid")

// TokenService defines the interface for issuing and decoding signed,
// self-contained session tokens.
type TokenService interface {
	// Issue adds an expiry claim (now + configured TTL) to the supplied
	// claims and returns the signed token string.
	Issue(claims map[string]any) (string, error)

	// Decode verifies the signature and expiry and returns the embedded
	// claims. Any token-format failure is reported as ErrTokenInvalid.
	Decode(token string) (map[string]any, error)
}
