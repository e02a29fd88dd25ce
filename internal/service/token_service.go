package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mediahub/internal/domain"
)

// TokenService emite y valida tokens de acceso y de refresco. No persiste
// nada: un token emitido vale hasta su expiración (logout es del cliente).
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// TokenPair es la respuesta estándar de emisión de tokens. ExpiresIn
// anuncia en segundos la vida del token de acceso.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Claims es el payload {id, role} embebido en cada token firmado.
type Claims struct {
	UserID    string `json:"id"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        "mediahub",
	}
}

// IssueAccessToken firma un token de acceso. ttl <= 0 usa el default.
func (s *TokenService) IssueAccessToken(userID string, role domain.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.accessTTL
	}
	return s.sign(s.accessSecret, userID, role, ttl, "access")
}

// IssueRefreshToken firma un token de refresco con el secreto de refresco.
func (s *TokenService) IssueRefreshToken(userID string, role domain.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.refreshTTL
	}
	return s.sign(s.refreshSecret, userID, role, ttl, "refresh")
}

// Pair emite el par acceso+refresco para un usuario.
func (s *TokenService) Pair(user domain.User) (TokenPair, error) {
	access, err := s.IssueAccessToken(user.ID, user.Role, 0)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(user.ID, user.Role, 0)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		Token:        access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *TokenService) VerifyAccessToken(token string) (Claims, error) {
	return s.verify(s.accessSecret, token, "access")
}

func (s *TokenService) VerifyRefreshToken(token string) (Claims, error) {
	return s.verify(s.refreshSecret, token, "refresh")
}

func (s *TokenService) sign(secret []byte, userID string, role domain.Role, ttl time.Duration, tokenType string) (string, error) {
	if len(secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:    userID,
		Role:      string(role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) verify(secret []byte, tokenString, tokenType string) (Claims, error) {
	if len(secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if claims.TokenType != tokenType {
		return Claims{}, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	if !domain.Role(claims.Role).Valid() {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
