package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	Origins      *Origins
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// DefaultCORSConfig returns the relay's CORS configuration.
func DefaultCORSConfig(origins *Origins) CORSConfig {
	return CORSConfig{
		Origins:      origins,
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       24 * time.Hour,
	}
}

// CORS answers preflight requests from allow-listed origins with 204 and
// adds Access-Control-Allow-Origin to their other requests.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:        cfg.Origins.Allowed,
		AllowMethods:           cfg.AllowMethods,
		AllowHeaders:           cfg.AllowHeaders,
		AllowBrowserExtensions: true,
		MaxAge:                 cfg.MaxAge,
	})
}
