package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/thetradeware/mekacash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const authCachePrefix = "auth:"

// AuthMiddleware validates the bearer token and sets the actor id and role on
// the request context. The identity collaborator issues tokens and caches
// their hashes under auth:<actorID>; a token whose hash is absent or stale
// has been revoked. Who the actor is in relation to a booking is checked by
// that collaborator before lifecycle operations run; here we only establish
// that the actor is authenticated.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil || actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()

		cachedHash, err := authCache.Get(ctx, authCachePrefix+actorID).Result()
		if err == redis.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authorization backend unavailable"})
			return
		}
		if cachedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		// Valid token: refresh the cache TTL and pass the actor downstream.
		_ = authCache.Expire(ctx, authCachePrefix+actorID, time.Hour).Err()
		c.Set("actorID", actorID)
		c.Set("actorRole", role)
		c.Next()
	}
}
