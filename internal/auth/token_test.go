package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, "noteboard")

	tok, err := tokens.Issue("user-1", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Expires, 2*time.Second)

	claims, err := tokens.Parse(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "noteboard", claims.Issuer)
}

func TestTokens_UniqueIDs(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, "")

	a, err := tokens.Issue("user-1", "user")
	require.NoError(t, err)
	b, err := tokens.Issue("user-1", "user")
	require.NoError(t, err)

	ca, err := tokens.Parse(a.Token)
	require.NoError(t, err)
	cb, err := tokens.Parse(b.Token)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, "noteboard")
	valid, err := tokens.Issue("user-1", "user")
	require.NoError(t, err)

	expired := NewTokens("secret", time.Hour, "noteboard")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("user-1", "user")
	require.NoError(t, err)

	otherSecret, err := NewTokens("other", time.Hour, "noteboard").Issue("user-1", "user")
	require.NoError(t, err)

	otherIssuer, err := NewTokens("secret", time.Hour, "elsewhere").Issue("user-1", "user")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "x",
			Issuer:    "noteboard",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"tampered":     valid.Token + "x",
		"expired":      old.Token,
		"wrong secret": otherSecret.Token,
		"wrong issuer": otherIssuer.Token,
		"alg none":     none,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokens_DefaultTTL(t *testing.T) {
	tokens := NewTokens("secret", 0, "")
	assert.Equal(t, defaultAccessTTL, tokens.ttl)
}
