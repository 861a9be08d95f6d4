// Package auth implements the bearer credential codec: a signed, time-boxed
// JWT carrying the user's identity and role claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

var ErrMissingUserID = errors.New("invalid token: missing user ID")
var ErrInvalidOrExpired = errors.New("invalid or expired token")

// Codec encodes and decodes bearer tokens with a single shared secret.
// Tokens are HS256-signed and expire after ttl; expiry is the only
// deactivation mechanism; there is no server-side blacklist.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode mints a token for the given user. The user id is always written
// under the "id" claim; "userId" is a legacy read-side alias only.
func (c *Codec) Encode(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"name":  user.Name,
		"phone": user.Phone,
		"role":  string(user.Role),
		"exp":   time.Now().Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the Identity the token
// represents. Two historical payload shapes are accepted for the user id:
// "id" (current) and "userId" (legacy); "id" wins when both are present.
// A token without either is rejected. An absent role claim defaults to
// RoleUser, since older tokens predate roles entirely.
func (c *Codec) Decode(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrExpired, err)
	}

	userID := claimInt64(claims, "id")
	if userID == 0 {
		userID = claimInt64(claims, "userId")
	}
	if userID == 0 {
		return nil, ErrMissingUserID
	}

	role := domain.RoleUser
	if r, _ := claims["role"].(string); r != "" {
		role = domain.Role(r)
	}

	name, _ := claims["name"].(string)
	phone, _ := claims["phone"].(string)

	return &domain.Identity{
		UserID: userID,
		Name:   name,
		Phone:  phone,
		Role:   role,
	}, nil
}

// claimInt64 reads a numeric claim. encoding/json decodes JWT payload
// numbers as float64; freshly built MapClaims may still hold int64.
func claimInt64(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
