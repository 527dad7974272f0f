package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nbenhadj/bookkeeping_app/internal/utils"
)

// pathsToSkip contains paths that should not produce analytics events.
var pathsToSkip = map[string]bool{
	"/health": true,
}

// namedEvents maps the core ledger operations to stable event names; other
// routes fall back to a name derived from the route template.
var namedEvents = map[string]string{
	"POST /api/v1/entries":                     utils.EventEntryCreated,
	"POST /api/v1/entries/:entryID/approve":    utils.EventEntryApproved,
	"POST /api/v1/invoices/:invoiceID/approve": utils.EventInvoiceApproved,
	"POST /api/v1/periods/:periodID/close":     utils.EventPeriodClosed,
}

// AnalyticsMiddleware creates a Gin middleware handler that captures an
// event per successful authenticated API call.
func AnalyticsMiddleware(analytics *utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if analytics == nil || !analytics.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		event, ok := namedEvents[c.Request.Method+" "+c.FullPath()]
		if !ok {
			// Event name from the route template, e.g. "/api/v1/entries" -> "api_v1_entries".
			event = strings.ReplaceAll(strings.Trim(c.FullPath(), "/"), "/", "_")
		}
		if event == "" {
			return
		}

		analytics.Enqueue(userID, event, map[string]any{
			"method": c.Request.Method,
			"status": c.Writer.Status(),
		})
	}
}
