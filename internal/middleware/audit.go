package middleware

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/services"
)

// maxAuditBody caps the request-body snippet stored with an audit entry.
const maxAuditBody = 2000

var credentialField = regexp.MustCompile(`(?i)("(?:password|token|secret)"\s*:\s*)"[^"]*"`)

// AuditLog writes one operation-log entry per mutating request. Reads are
// never audited.
func AuditLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		switch method {
		case "POST", "PUT", "DELETE":
		default:
			c.Next()
			return
		}

		body := captureBody(c)

		c.Next()

		status := c.Writer.Status()
		outcome := "Failed"
		if status >= 200 && status < 300 {
			outcome = "OK"
		}
		message := fmt.Sprintf("[Audit] %s %s %s → %s",
			GetUsername(c), method, c.Request.URL.Path, outcome)

		var uid *uint
		if id := GetUserID(c); id > 0 {
			uid = &id
		}

		module, action := routeInfo(c.FullPath(), method)
		services.LogInfo(module, action, message, uid, c.ClientIP(), c.Request.UserAgent(), map[string]interface{}{
			"method": method,
			"path":   c.Request.URL.Path,
			"status": status,
			"body":   body,
			"audit":  true,
		})
	}
}

// captureBody reads and restores the request body, redacting credential
// fields and truncating oversized payloads.
func captureBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	raw, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

	body := credentialField.ReplaceAllString(string(raw), `$1"***"`)
	if len(body) > maxAuditBody {
		body = body[:maxAuditBody] + "...[truncated]"
	}
	return body
}

// routeInfo derives the log module and action from a route pattern, e.g.
// "/api/projects/:id" + PUT → ("Projects", "Update").
func routeInfo(fullPath, method string) (string, string) {
	segment := strings.TrimPrefix(fullPath, "/api/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	if segment == "" {
		segment = "unknown"
	}
	module := strings.Title(strings.ReplaceAll(segment, "-", " "))

	action := method
	switch method {
	case "POST":
		action = "Create"
	case "PUT":
		action = "Update"
	case "DELETE":
		action = "Delete"
	}
	return module, action
}
