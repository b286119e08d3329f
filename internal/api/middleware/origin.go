package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Origins is a fixed allow-list of request origins.
type Origins struct {
	allowed map[string]struct{}
	list    []string
}

// NewOrigins builds an allow-list. Entries are trimmed and empty ones dropped.
func NewOrigins(origins []string) *Origins {
	o := &Origins{allowed: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if _, dup := o.allowed[origin]; dup {
			continue
		}
		o.allowed[origin] = struct{}{}
		o.list = append(o.list, origin)
	}
	return o
}

// Allowed reports whether origin is on the list. The comparison is exact.
func (o *Origins) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	_, ok := o.allowed[origin]
	return ok
}

// List returns the allowed origins in configuration order.
func (o *Origins) List() []string {
	return append([]string(nil), o.list...)
}

// RejectFunc is told why a request was refused.
type RejectFunc func(reason string)

// OriginGuard aborts with 403 unless the Origin header is allow-listed.
// Preflight requests get a bare "Forbidden"; others get the invalid origin
// message.
func OriginGuard(origins *Origins, onReject RejectFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origins.Allowed(c.GetHeader("Origin")) {
			c.Next()
			return
		}

		if onReject != nil {
			onReject("origin")
		}
		msg := "Forbidden: Invalid origin"
		if c.Request.Method == http.MethodOptions {
			msg = "Forbidden"
		}
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.String(http.StatusForbidden, msg)
		c.Abort()
	}
}
