package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tamaq_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	APIMaxRequests   = 100 // par minute pour les endpoints généraux

	LoginCooldown = 15 * time.Minute
	APICooldown   = 1 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
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

		// remet le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		cooldownKey := "login_cooldown:" + input.Email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		key := "login_attempts:" + input.Email
		attempts := database.Redis.Incr(ctx, key).Val()
		if attempts == 1 {
			database.Redis.Expire(ctx, key, LoginCooldown)
		}
		if attempts > LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de tentatives de connexion"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIRateLimit — plafond global par IP sur les endpoints publics
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_rate:" + c.ClientIP()

		count := database.Redis.Incr(ctx, key).Val()
		if count == 1 {
			database.Redis.Expire(ctx, key, APICooldown)
		}
		if count > APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes, réessayez dans une minute"})
			c.Abort()
			return
		}

		c.Next()
	}
}
