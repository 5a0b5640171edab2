package analytics

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Recorder is what the tracking middleware hands visits to. Implementations
// must not block the request.
type Recorder interface {
	RecordAsync(ip, userAgent, path string)
}

var untrackedPrefixes = []string{
	"/static/",
	"/admin",
	"/favicon",
	"/privacy",
	"/healthz",
	"/theme",
	"/sections/",
}

// Tracked reports whether a request counts as a page visit. Theme toggles
// and section deep links happen on a page that was already counted.
func Tracked(method, path string) bool {
	if method != http.MethodGet {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// Middleware records page visits. Requests carrying "DNT: 1" are not
// recorded. Failures are logged by the recorder and never reach the visitor.
func Middleware(rec Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if Tracked(c.Request.Method, path) && c.GetHeader("DNT") != "1" {
			rec.RecordAsync(c.ClientIP(), c.GetHeader("User-Agent"), path)
		}
		c.Next()
	}
}
