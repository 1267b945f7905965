package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eshop_back_end/internal/database"
)

const (
	LoginMaxAttempts          = 5
	ForgotPasswordMaxAttempts = 3

	LoginCooldown          = 15 * time.Minute
	ForgotPasswordCooldown = 10 * time.Minute
)

// emailRateLimit limite les tentatives par adresse e-mail via Redis.
func emailRateLimit(prefix string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := c.Request.Context()
		key := fmt.Sprintf("%s_attempts:%s", prefix, input.Email)

		attempts, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if attempts == 1 {
			database.Redis.Expire(ctx, key, cooldown)
		}

		if attempts > int64(maxAttempts) {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoginRateLimit limite les tentatives de connexion par e-mail.
func LoginRateLimit() gin.HandlerFunc {
	return emailRateLimit("login", LoginMaxAttempts, LoginCooldown)
}

// ForgotPasswordRateLimit limite les demandes de réinitialisation.
func ForgotPasswordRateLimit() gin.HandlerFunc {
	return emailRateLimit("forgot_password", ForgotPasswordMaxAttempts, ForgotPasswordCooldown)
}
