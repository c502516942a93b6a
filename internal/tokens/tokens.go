package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any unusable token: bad
// signature, malformed structure, or expiry. Callers cannot distinguish the
// sub-cases; all map to the same 401 at the HTTP boundary.
var ErrInvalidToken = errors.New("invalid token")

// UserClaim is the identity payload embedded in issued tokens.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the full JWT claim set: `{user:{id}}` plus standard iat/exp.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Issue creates a signed HS256 token for the given user id with the given
// lifetime.
func Issue(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Verify validates signature and expiry and returns the embedded user id.
func Verify(secret, raw string) (string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.User.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.User.ID, nil
}
