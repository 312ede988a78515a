package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"survey/config"
	"survey/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface
// using HS256-signed JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService. The signing key and TTL
// are read once from the immutable config; the known-weak default secret
// is allowed but logged loudly.
func NewJWTService(cfg *config.Config, logger *slog.Logger) service.TokenService {
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("JWT_SECRET is not set, using the insecure default signing key",
			slog.String("remedy", "set JWT_SECRET in the environment"))
	}

	return &jwtService{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    time.Duration(cfg.Auth.AccessTokenExpireMinutes) * time.Minute,
	}
}

// Issue copies the caller's claims, adds the expiry claim and signs the
// token. Caller-supplied claims are not mutated.
func (s *jwtService) Issue(claims map[string]any) (string, error) {
	mapClaims := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["exp"] = jwt.NewNumericDate(time.Now().Add(s.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Decode verifies the signature and expiry claim. Every token-format
// failure collapses into service.ErrTokenInvalid; a validly-issued token
// can only stop verifying by expiring.
func (s *jwtService) Decode(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, service.ErrTokenInvalid
	}

	return mapClaims, nil
}
