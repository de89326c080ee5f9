package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NoStoreValue is the Cache-Control value for responses no cache may keep.
const NoStoreValue = "private, no-store"

// PublicMaxAge is the Cache-Control value for a shared response fresh for maxAge.
func PublicMaxAge(maxAge time.Duration) string {
	return fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
}

// CacheControl marks responses as publicly cacheable for maxAge.
func CacheControl(maxAge time.Duration) gin.HandlerFunc {
	value := PublicMaxAge(maxAge)
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}

// NoStore keeps per-client responses out of shared caches.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", NoStoreValue)
		c.Next()
	}
}
