package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockpulse/internal/logger"
	"stockpulse/internal/types"
)

// SubscriptionStore is the write side of the subscriber directory.
type SubscriptionStore interface {
	Put(ctx context.Context, sub types.Subscriber) error
	Delete(ctx context.Context, email string) error
}

type SubscriptionHandler struct {
	store SubscriptionStore
}

func NewSubscriptionHandler(store SubscriptionStore) *SubscriptionHandler {
	return &SubscriptionHandler{store: store}
}

// Subscribe saves a subscription record. The symbol list must be
// non-empty on write; the report pipeline still tolerates records that
// end up empty.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or symbols list"})
		return
	}
	if req.Email == "" || len(req.Symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or symbols list"})
		return
	}

	sub := types.Subscriber{
		Email:     req.Email,
		Symbols:   req.Symbols,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.store.Put(c.Request.Context(), sub); err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Failed to save subscription", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info(c.Request.Context(), "Subscription saved", "email", req.Email, "symbols", len(req.Symbols))
	c.JSON(http.StatusOK, gin.H{"message": "Subscription saved successfully"})
}

// Unsubscribe deletes a subscription and answers with a small HTML
// confirmation page, since the link lands here straight from the email.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(unsubscribePage("Missing email parameter.")))
		return
	}

	if err := h.store.Delete(c.Request.Context(), email); err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Failed to delete subscription", err, "email", email)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(unsubscribePage(fmt.Sprintf("An error occurred: %v", err))))
		return
	}

	logger.Info(c.Request.Context(), "Subscription removed", "email", email)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(unsubscribePage("You have been successfully unsubscribed from StockPulse alerts.")))
}

// Health reports liveness
func (h *SubscriptionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func unsubscribePage(message string) string {
	return fmt.Sprintf(`<html>
  <head>
    <title>Unsubscribe | StockPulse</title>
    <style>
      body { font-family: Arial, sans-serif; background: #f1f5f9; padding: 2rem; text-align: center; }
      .box { background: white; display: inline-block; padding: 2rem; border-radius: 12px; box-shadow: 0 4px 16px rgba(0,0,0,0.05); }
      h1 { color: #1e3a8a; }
    </style>
  </head>
  <body>
    <div class="box">
      <h1>%s</h1>
    </div>
  </body>
</html>`, message)
}
