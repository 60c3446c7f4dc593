package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/spf13/viper"

	"github.com/ougirez/agreste/internal/pkg/constants"
)

// AuthTokenWrapper is the payload of the admin token set in the secret_token cookie.
type AuthTokenWrapper struct {
	Secret string `json:"secret"`
	jwt.StandardClaims
}

func signingKey() []byte {
	return []byte(viper.GetString(constants.ViperSigningKeyKey))
}

// GenerateAuthToken signs the wrapper with HS256. A zero ttl issues a token that never expires.
func GenerateAuthToken(wrapper *AuthTokenWrapper, ttl time.Duration) (string, error) {
	now := time.Now()
	wrapper.IssuedAt = now.Unix()
	if ttl > 0 {
		wrapper.ExpiresAt = now.Add(ttl).Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper).SignedString(signingKey())
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}
	return token, nil
}

func ParseAuthToken(token string) (*AuthTokenWrapper, error) {
	wrapper := &AuthTokenWrapper{}

	parsed, err := jwt.ParseWithClaims(token, wrapper, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnauthorized, err.Error())
	}
	if !parsed.Valid {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
