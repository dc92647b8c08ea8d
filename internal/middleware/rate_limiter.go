package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"

	"github.com/gin-gonic/gin"
)

// ipEntry tracks request counts per IP within a sliding window.
type ipEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginMap   = make(map[string]*ipEntry)
	loginMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 10 per minute per IP. Con un
// solo operador legítimo, cualquier ráfaga mayor es un ataque.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		loginMapMu.Lock()
		entry, exists := loginMap[ip]
		if !exists {
			entry = &ipEntry{}
			loginMap[ip] = entry
		}
		loginMapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(time.Minute)
		}

		entry.count++
		if entry.count > 10 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}
