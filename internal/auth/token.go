package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultAccessTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an access token. The subject is the user id
// and the JWT ID identifies the token for revocation.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AccessToken is a signed token and the moment it stops being accepted.
type AccessToken struct {
	Token   string
	Expires time.Time
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret. ttl <= 0 means 24h.
func NewTokens(secret string, ttl time.Duration, issuer string) *Tokens {
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}
}

// Issue signs a token for userID acting with role.
func (t *Tokens) Issue(userID, role string) (AccessToken, error) {
	now := t.now().UTC()
	exp := now.Add(t.ttl).Truncate(time.Second)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, Expires: exp}, nil
}

// Parse verifies raw and returns its claims. Every failure wraps ErrInvalidToken.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
