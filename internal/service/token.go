package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenGeneration = errors.New("failed to generate authentication token")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

const tokenIssuer = "biceppump"

// token types carried in the typ claim
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair is the result of a successful signup or login.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens carrying the user ID.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue creates an access and a refresh token for userID.
func (t *TokenIssuer) Issue(userID string) (TokenPair, error) {
	now := t.now()
	pair := TokenPair{
		AccessExpiresAt:  now.Add(t.accessTTL),
		RefreshExpiresAt: now.Add(t.refreshTTL),
	}

	var err error
	if pair.AccessToken, err = t.sign(userID, tokenTypeAccess, now, pair.AccessExpiresAt); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	if pair.RefreshToken, err = t.sign(userID, tokenTypeRefresh, now, pair.RefreshExpiresAt); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return pair, nil
}

// Verify checks signature, expiry and type and returns the user ID of an
// access token. Refresh tokens are rejected.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwtClaims{}
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" || claims.Type != tokenTypeAccess {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func (t *TokenIssuer) sign(userID, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := &jwtClaims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
