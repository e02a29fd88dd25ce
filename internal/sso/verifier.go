package sso

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity es la aserción de identidad ya verificada por el proveedor SSO.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier valida una aserción externa y extrae la identidad del sujeto.
type Verifier interface {
	Verify(ctx context.Context, assertion string) (Identity, error)
}

var ErrAssertionInvalid = errors.New("sso assertion invalid")

type assertionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier valida aserciones firmadas HS256 con un secreto compartido
// con el proveedor de identidad.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, assertion string) (Identity, error) {
	if len(v.secret) == 0 || strings.TrimSpace(assertion) == "" {
		return Identity{}, ErrAssertionInvalid
	}
	var claims assertionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(assertion, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, ErrAssertionInvalid
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return Identity{}, ErrAssertionInvalid
	}
	return Identity{
		Subject: claims.Subject,
		Email:   email,
		Name:    claims.Name,
	}, nil
}

// PassthroughVerifier trata la aserción como el email del sujeto, sin
// verificación criptográfica. Solo para desarrollo.
type PassthroughVerifier struct{}

func NewPassthroughVerifier() *PassthroughVerifier {
	return &PassthroughVerifier{}
}

func (v *PassthroughVerifier) Verify(_ context.Context, assertion string) (Identity, error) {
	email := strings.ToLower(strings.TrimSpace(assertion))
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, ErrAssertionInvalid
	}
	return Identity{Email: email}, nil
}
