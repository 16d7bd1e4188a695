package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"coffee_bot/internal/coffee" // Core service
	"coffee_bot/internal/domain" // Domain models
	"coffee_bot/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// How long cached admin reads may lag behind the store
const adminCacheTTL = 60 * time.Second

// ListUsersHandler returns every registered user with their deposit
func ListUsersHandler(svc *coffee.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		cacheKey := "admin:users"
		var cached []domain.User
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"users": cached, "cached": true})
			return
		}
		users, err := svc.Users()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, users, adminCacheTTL) // Cache the result
		c.JSON(http.StatusOK, gin.H{"users": users, "cached": false})
	}
}

// sinceParam decodes an optional "since" query as Unix seconds
func sinceParam(c *gin.Context) time.Time {
	if s := c.Query("since"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(v, 0)
		}
	}
	return time.Time{}
}

// CompletedOrdersHandler returns a user's completed orders
func CompletedOrdersHandler(svc *coffee.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
			return
		}
		ctx := context.Background()
		cacheKey := "admin:orders:" + userID + ":since:" + c.DefaultQuery("since", "0")
		var cached []domain.CompletedOrder
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"orders": cached, "cached": true})
			return
		}
		orders, err := svc.CompletedOrders(userID, sinceParam(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, orders, adminCacheTTL)
		c.JSON(http.StatusOK, gin.H{"orders": orders, "cached": false})
	}
}

// WalletHistoryHandler returns a user's balance change journal
func WalletHistoryHandler(svc *coffee.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
			return
		}
		ctx := context.Background()
		cacheKey := "admin:wallet:" + userID + ":since:" + c.DefaultQuery("since", "0")
		var cached []domain.WalletHistory
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"history": cached, "cached": true})
			return
		}
		history, err := svc.WalletHistoryOf(userID, sinceParam(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet history"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, history, adminCacheTTL)
		c.JSON(http.StatusOK, gin.H{"history": history, "cached": false})
	}
}
