package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken = errors.New("JWT token is invalid")
	ErrExpiredJWTToken = errors.New("JWT token is expired")
)

const defaultJWTDuration = 10 * time.Minute

type JWTManagerInterface interface {
	GenerateAccessJWT(userID int64, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (int64, error)
}

type AccessTokenCustomClaims struct {
	UserID int64 `json:"user_id"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret string
}

func NewJWTManager(secret string) JWTManagerInterface {
	return &JWTManager{
		secret: secret,
	}
}

func (j *JWTManager) GenerateAccessJWT(userID int64, duration time.Duration) (string, error) {
	if duration <= 0 {
		duration = defaultJWTDuration
	}
	claims := &AccessTokenCustomClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

// ValidateAccessToken checks signature and expiry and returns the user ID the
// token was issued for. That user ID is the only tenancy boundary the engine
// trusts, every repository query is scoped to it.
func (j *JWTManager) ValidateAccessToken(tokenString string) (int64, error) {
	claims := &AccessTokenCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWTToken
		}
		return []byte(j.secret), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return 0, ErrExpiredJWTToken
		}
		return 0, ErrInvalidJWTToken
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidJWTToken
	}
	return claims.UserID, nil
}
