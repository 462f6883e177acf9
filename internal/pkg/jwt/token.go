package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/env"
)

const defaultExpirationMinutes = 1440

var ErrInvalidToken = errors.New("invalid token")

// Claims represents standard JWT claims plus custom fields
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a signed JWT for the given user and returns the
// token together with its unix expiry.
func GenerateToken(user *models.User) (string, int64, error) {
	secret := env.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", 0, errors.New("JWT_SECRET is not set")
	}

	expiresAt := time.Now().Add(expiration())
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    env.GetEnv("JWT_ISSUER", "akademia"),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}

// ValidateToken parses and verifies a token string and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	secret := env.GetEnv("JWT_SECRET", "")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func expiration() time.Duration {
	minutes := defaultExpirationMinutes
	if raw := env.GetEnv("JWT_EXPIRATION_MINUTES", ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			minutes = v
		}
	}
	return time.Duration(minutes) * time.Minute
}
