package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ngandu/cimentmart/internal/models"
)

const tokenTTL = 24 * time.Hour

var errInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthToken creates and verifies signed authorization tokens
type AuthToken struct {
	key []byte
}

// NewAuthToken creates new AuthToken with signing key
func NewAuthToken(key []byte) *AuthToken {
	return &AuthToken{key: key}
}

// CreateToken creates signed token for user
func (at *AuthToken) CreateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Role: user.Role,
	})

	return token.SignedString(at.key)
}

// VerifyToken parses and validates token string, returns its payload
func (at *AuthToken) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	c := claims{}
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return at.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	return &models.TokenPayload{
		UserID: c.Subject,
		Role:   c.Role,
	}, nil
}
