package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/internal/config"
)

// AuthService issues the signed access tokens that both route families
// consume: API clients carry them in the Authorization header, the web
// frontend in an httpOnly cookie. One signing function, two transports.
type AuthService struct {
	config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{config: cfg}
}

// IssueAccessToken signs an HS256 token carrying the user id.
func (s *AuthService) IssueAccessToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(s.config.AccessTokenMaxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// TokenMaxAge returns the access token lifetime in seconds, for the
// cookie Max-Age and the expires_in response field.
func (s *AuthService) TokenMaxAge() int {
	return s.config.AccessTokenMaxAge
}
