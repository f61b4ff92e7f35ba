package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"serenity/config"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateAdminToken creates a signed JWT for an admin account. The token
// expires after the specified duration.
func GenerateAdminToken(adminID, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   adminID,
		"email": email,
		"role":  "admin",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// VerifyAdminToken validates the token signature and the admin role claim,
// returning the admin ID and email.
func VerifyAdminToken(tokenString string) (adminID, email string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return "", "", errors.New("not an admin token")
	}
	adminID, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if adminID == "" {
		return "", "", errors.New("missing subject claim")
	}
	return adminID, email, nil
}
