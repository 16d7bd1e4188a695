package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"coffee_bot/internal/utils"

	"github.com/gin-gonic/gin"
)

// Slack rejects replayed requests older than five minutes; so do we
const maxSignatureAge = 5 * time.Minute

// SlackVerifyMiddleware authenticates slash-command requests with the
// workspace signing secret (X-Slack-Signature over "v0:timestamp:body").
// The body is restored afterwards so the handler can still read the form.
func SlackVerifyMiddleware(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		timestamp := c.GetHeader("X-Slack-Request-Timestamp")
		signature := c.GetHeader("X-Slack-Signature")
		if timestamp == "" || signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Slack signature"})
			return
		}

		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil || time.Since(time.Unix(ts, 0)) > maxSignatureAge {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Stale Slack signature"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unreadable request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !utils.VerifySignature(signingSecret, timestamp, string(body), signature) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Slack signature"})
			return
		}
		c.Next()
	}
}
