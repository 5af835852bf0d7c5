package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/conformly/conformly/internal/billing/stripe"
	"github.com/gin-gonic/gin"
)

const webhookBodyLimit = 1 << 20 // 1MiB

// HandleStripeWebhook acknowledges every authenticated delivery with 200 so
// the provider stops retrying; business failures are visible in the webhook
// event log, not in the transport status.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body", "received": false})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if err := s.billingSvc.ProcessWebhook(c.Request.Context(), payload, sigHeader); err != nil {
		if errors.Is(err, stripe.ErrInvalidSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature", "received": false})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "received": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
