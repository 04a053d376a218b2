package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 7*24*time.Hour)

	pair, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.AccessExpiresAt, time.Minute)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), pair.RefreshExpiresAt, time.Minute)

	userID, err := issuer.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, time.Hour)

	other := NewTokenIssuer("other-secret", time.Hour, time.Hour)
	foreign, err := other.Issue("user-1")
	require.NoError(t, err)

	expiredIssuer := NewTokenIssuer("secret", time.Hour, time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("user-1")
	require.NoError(t, err)

	own, err := issuer.Issue("user-1")
	require.NoError(t, err)

	untyped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not-a-token",
		"wrong secret":  foreign.AccessToken,
		"expired":       expired.AccessToken,
		"empty":         "",
		"refresh token": own.RefreshToken,
		"no type":       untyped,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenIssuer_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() { NewTokenIssuer("", time.Hour, time.Hour) })
}
