package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sparkcreatives/donations-api/app/models"
	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// Claims is the JWT payload for staff sessions. TokenType distinguishes
// short-lived access tokens from refresh tokens so one cannot stand in for
// the other.
type Claims struct {
	Roles     []string `json:"roles,omitempty"`
	TokenType string   `json:"type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 staff tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func NewTokenServiceFromEnv() *TokenService {
	return NewTokenService(
		env.GetEnv("JWT_SECRET_KEY", "your-secret-key-here-change-in-production"),
		time.Duration(env.GetEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30))*time.Minute,
		time.Duration(env.GetEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7))*24*time.Hour,
	)
}

// CreateAccessToken issues a short-lived token carrying the user's roles.
func (s *TokenService) CreateAccessToken(user *models.StaffUser) (string, error) {
	return s.sign(user.Username, user.Roles, TokenTypeAccess, s.accessTTL)
}

// CreateRefreshToken issues a long-lived token that can only be exchanged for
// a new token pair; it carries no roles.
func (s *TokenService) CreateRefreshToken(username string) (string, error) {
	return s.sign(username, nil, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) sign(subject string, roles []string, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Roles:     roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify parses a token and checks it carries the expected type.
func (s *TokenService) Verify(tokenString, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
