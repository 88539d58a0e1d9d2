package relay

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

const hostRole = "host"

var (
	ErrInvalidToken = errors.New("invalid host token")
	ErrNoSecret     = errors.New("token secret is not configured")
)

type hostClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenIssuer signs and checks the tokens that entitle a connection to host a room.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an HS256 issuer
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a host token for roomCode and its expiry.
func (i *TokenIssuer) Issue(roomCode string) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, ErrNoSecret
	}
	now := i.now()
	expires := now.Add(i.ttl)
	claims := hostClaims{
		Role: hostRole,
		StandardClaims: jwt.StandardClaims{
			Subject:   roomCode,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign host token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks that token is a valid, unexpired host token for roomCode.
func (i *TokenIssuer) Verify(token, roomCode string) error {
	if len(i.secret) == 0 {
		return ErrNoSecret
	}
	var claims hostClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Role != hostRole || claims.Subject != roomCode {
		return ErrInvalidToken
	}
	if claims.ExpiresAt < i.now().Unix() {
		return fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return nil
}
