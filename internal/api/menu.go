package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"coffee_bot/internal/coffee" // Core service
	"coffee_bot/internal/domain" // Domain models
	"coffee_bot/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// MenuHandler returns the menu for a kiosk display. Menu edits made through
// chat commands surface here within the cache TTL.
func MenuHandler(svc *coffee.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		cacheKey := "menu:list"
		var cached []domain.Menu
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"menu": cached, "cached": true})
			return
		}
		menus, err := svc.ListMenu()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, menus, 60*time.Second) // Cache the menu for 60 seconds
		c.JSON(http.StatusOK, gin.H{"menu": menus, "cached": false})
	}
}
