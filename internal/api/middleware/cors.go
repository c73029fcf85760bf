package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// CORS guards the console against cross-site requests. The page is served
// from the console itself, so same-origin requests and requests without an
// Origin header (terminal tools) pass untouched. Other origins are handled by
// allowOrigins:
//   - an exact origin may use every route;
//   - "*" grants read-only access (GET and HEAD);
//   - anything else is refused for state-changing methods and preflights.
func CORS(allowOrigins []string) gin.HandlerFunc {
	exact := make(map[string]bool, len(allowOrigins))
	wildcard := false
	for _, o := range allowOrigins {
		if o == "*" {
			wildcard = true
			continue
		}
		exact[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || sameOrigin(origin, c.Request.Host) {
			c.Next()
			return
		}

		method := c.Request.Method
		preflight := method == http.MethodOptions
		if preflight {
			method = c.GetHeader("Access-Control-Request-Method")
		}

		c.Header("Vary", "Origin")
		switch {
		case exact[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			c.Header("Access-Control-Max-Age", "86400")
		case wildcard && readOnly(method):
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET, HEAD")
		case readOnly(method) && !preflight:
			// no CORS headers: the browser keeps the response from the page
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "cross-origin request refused"})
			return
		}

		if preflight {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func sameOrigin(origin, host string) bool {
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && u.Host == host
}

func readOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}
