package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eshop_back_end/internal/models"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

func jwtExpiry() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRES_IN_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// GenerateJWT signe un token portant l'identité et le rôle de l'utilisateur.
func GenerateJWT(user models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"userId":   user.ID.Hex(),
		"username": user.Name,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(jwtExpiry()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// TokenClaims est le contenu vérifié d'un token porteur.
type TokenClaims struct {
	UserID   string
	Username string
	Role     string
	IssuedAt time.Time
}

// ParseJWT vérifie la signature et l'expiration, puis extrait les claims.
func ParseJWT(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("méthode de signature inattendue")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token invalide")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalides")
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, errors.New("userId manquant")
	}

	parsed := &TokenClaims{UserID: userID}
	parsed.Username, _ = claims["username"].(string)
	parsed.Role, _ = claims["role"].(string)
	if iat, ok := claims["iat"].(float64); ok {
		parsed.IssuedAt = time.Unix(int64(iat), 0)
	}

	return parsed, nil
}
