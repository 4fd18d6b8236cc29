package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns a permissive cross-origin policy. The API is called from
// browser contexts on arbitrary origins, so any origin is accepted and
// OPTIONS preflights are answered automatically.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "Accept", "Origin", "X-Requested-With"},
		MaxAge:          24 * time.Hour,
	})
}
