package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/billing"
	"github.com/haroonchishty/sca-backend/internal/service"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// WebhooksHandler receives payment processor lifecycle events.
type WebhooksHandler struct {
	subs   *service.SubscriptionService
	secret string
	logger *zap.Logger
}

// NewWebhooksHandler constructs handler.
func NewWebhooksHandler(subs *service.SubscriptionService, secret string, logger *zap.Logger) *WebhooksHandler {
	return &WebhooksHandler{subs: subs, secret: secret, logger: logger}
}

// HandleStripe handles POST /webhooks/stripe. Authenticity is verified over
// the raw body before any parsing. Processing failures return 400 so the
// processor redelivers; unrecognized event types are acknowledged as
// received.
func (h *WebhooksHandler) HandleStripe(c *fiber.Ctx) error {
	if h.secret == "" {
		return apperrors.NewSignatureInvalid(errors.New("webhook secret not configured"))
	}
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return apperrors.NewSignatureInvalid(errors.New("no signature found in the request headers"))
	}

	event, err := webhook.ConstructEvent(c.Body(), signature, h.secret)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return apperrors.NewSignatureInvalid(err)
	}

	h.logger.Info("stripe webhook received",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))

	normalized, recognized, err := billing.NormalizeEvent(event)
	if err != nil {
		return apperrors.NewDomainError("WEBHOOK_ERROR", "webhook processing failed", http.StatusBadRequest, err)
	}
	if !recognized {
		h.logger.Info("unhandled event type", zap.String("event_type", string(event.Type)))
		return c.JSON(fiber.Map{"received": true})
	}

	if h.subs == nil {
		return apperrors.NewDomainError("WEBHOOK_ERROR", "webhook processing failed", http.StatusBadRequest,
			errors.New("payment processor not configured"))
	}
	if err := h.subs.Apply(c.UserContext(), normalized); err != nil {
		return apperrors.NewDomainError("WEBHOOK_ERROR", "webhook processing failed", http.StatusBadRequest, err)
	}

	return c.JSON(fiber.Map{"received": true})
}
