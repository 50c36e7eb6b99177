package middleware

import (
	"net/http"

	"bookinghook/internal/modules/checkin"
	"bookinghook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret rejects deliveries whose shared-secret header does not match
// expected. An empty expected secret lets every delivery through.
func WebhookSecret(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checkin.VerifySignature(c.GetHeader(WebhookSecretHeader), expected) {
			Logger(c).WithField("reason", "invalid_webhook_secret").Warn("webhook rejected")
			response.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Invalid webhook secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
