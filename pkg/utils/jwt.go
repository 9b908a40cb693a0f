package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type JWTPair struct {
	AccessToken     string        `json:"access_token"`
	AccessTokenExp  time.Duration `json:"access_token_exp"`
	RefreshToken    string        `json:"refresh_token"`
	RefreshTokenExp time.Duration `json:"refresh_token_exp"`
}

type GenerateJWTPairDto struct {
	Method        jwt.SigningMethod
	AccessSecret  []byte
	AccessClaims  jwt.MapClaims
	AccessExpiry  time.Duration
	RefreshSecret []byte
	RefreshClaims jwt.MapClaims
	RefreshExpiry time.Duration
}

func GenerateJWT(method jwt.SigningMethod, secret []byte, claims jwt.MapClaims, expiry time.Duration) (string, error) {
	claims["exp"] = time.Now().Add(expiry).Unix()
	return jwt.NewWithClaims(method, claims).SignedString(secret)
}

func GenerateJWTPair(dto GenerateJWTPairDto) (*JWTPair, error) {
	accessToken, err := GenerateJWT(dto.Method, dto.AccessSecret, dto.AccessClaims, dto.AccessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := GenerateJWT(dto.Method, dto.RefreshSecret, dto.RefreshClaims, dto.RefreshExpiry)
	if err != nil {
		return nil, err
	}

	return &JWTPair{
		AccessToken:     accessToken,
		AccessTokenExp:  dto.AccessExpiry,
		RefreshToken:    refreshToken,
		RefreshTokenExp: dto.RefreshExpiry,
	}, nil
}

// DecodeJWT verifies an HMAC signed token and returns its claims. Expired
// tokens are rejected by the parser.
func DecodeJWT(token string, secret []byte) (jwt.MapClaims, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
