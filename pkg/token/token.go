// Package token issues and validates the signed identity tokens used by the
// clinic API. Tokens are HMAC-SHA256 JWTs carrying the subject username and
// the granted role set; validation is a pure function of the secret and the
// current time.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("malformed token")
	ErrExpired      = errors.New("token expired")
	ErrBadSignature = errors.New("invalid token signature")
)

// Claims is the identity extracted from a validated token.
type Claims struct {
	Subject string
	Roles   []string
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issuer creates and validates tokens with a process-wide secret and a fixed TTL.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. A non-positive ttl defaults to 24h.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given subject and role set, valid for the
// configured TTL from now.
func (i *Issuer) Issue(username string, roles []string) (string, error) {
	now := i.now().UTC()
	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Validate parses and verifies a token string, returning the embedded claims.
// Errors are one of ErrExpired, ErrBadSignature or ErrMalformed.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return &Claims{Subject: claims.Subject, Roles: claims.Roles}, nil
}
