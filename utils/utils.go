package utils

import (
	"os"
	"time"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 14

var jwtSecret = []byte(getEnvOrDefault("JWT_SECRET", "TSSSSS"))

func GetJWTSecret() []byte {
	return jwtSecret
}

// SetJWTSecret overrides the package-level signing key with the value
// config.Load already validated as present, so cmd/main.go's
// JWT_SECRET requirement and the key Authenticate/GenerateJWT actually
// sign and verify with never diverge.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateJWT issues a token for an organizer identity: organizerID is
// the opaque id the transport layer uses to scope which tournaments
// the caller may mutate.
func GenerateJWT(organizerID string, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": organizerID,
		"role":    string(role),
		"exp":     now.Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecret)
}
