package middleware

import "github.com/gin-gonic/gin"

const (
	cacheHitKey = "cache_hit"
	// CacheHeader reports HIT or MISS for cacheable reads.
	CacheHeader = "X-Cache"
)

// SetCacheHit records whether the payload came from cache. Call before writing the body.
func SetCacheHit(c *gin.Context, hit bool) {
	c.Set(cacheHitKey, hit)
	if hit {
		c.Header(CacheHeader, "HIT")
		return
	}
	c.Header(CacheHeader, "MISS")
}

// CacheHit reports what SetCacheHit stored.
func CacheHit(c *gin.Context) bool {
	return c.GetBool(cacheHitKey)
}
