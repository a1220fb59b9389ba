package admin

import (
	"net/http"
	"time"

	"agency-site/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	tokenTTL  = 12 * time.Hour
)

// ------------------------------
// POST /api/admin/login
// ------------------------------
func Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	if config.ADMIN_PASSWORD_HASH == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin login not configured"})
		return
	}
	err := bcrypt.CompareHashAndPassword([]byte(config.ADMIN_PASSWORD_HASH), []byte(input.Password))
	if err != nil {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("Failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := IssueToken(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Could not sign admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// IssueToken signs an admin token with JWT_SECRET.
func IssueToken(now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  RoleAdmin,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
