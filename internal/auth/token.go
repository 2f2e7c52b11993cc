package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified token says about the caller.
type Identity struct {
	EmployeeID uint
	Email      string
	IsAdmin    bool
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(id Identity) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":   id.EmployeeID,
		"email": id.Email,
		"admin": id.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *TokenIssuer) Parse(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	admin, _ := claims["admin"].(bool)

	return Identity{EmployeeID: uint(sub), Email: email, IsAdmin: admin}, nil
}
