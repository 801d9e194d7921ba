// Package auth verifies externally issued bearer tokens and threads
// the resulting caller principal through request context. Token
// issuance is not this service's concern.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the verified acting user.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Claims is the expected shape of inbound tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// VerifyToken parses and validates an HS256 bearer token and extracts
// the principal. The subject claim is the user identifier.
func VerifyToken(tokenString string, secret []byte) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	role := claims.Role
	if role == "" {
		role = "user"
	}
	return &Principal{UserID: claims.Subject, Email: claims.Email, Role: role}, nil
}

type ctxKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal and whether one is
// present. Anonymous requests (public share redemption) carry none.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok && p != nil
}
