package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/config"
)

// ErrCustomerNotFound means no processor customer exists for the email.
var ErrCustomerNotFound = errors.New("stripe customer not found")

// Client wraps the Stripe API client with the platform's helpers.
type Client struct {
	api    *client.API
	logger *zap.Logger
}

// New initializes a Stripe client from configuration.
func New(cfg config.StripeConfig, logger *zap.Logger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe not configured: set STRIPE_SECRET_KEY")
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	logger.Info("stripe client initialized", zap.String("key_prefix", safePrefix(cfg.SecretKey)))
	return &Client{api: api, logger: logger}, nil
}

// CustomerEmail resolves a processor customer id to the account email.
// ok is false when the customer is deleted or has no email; such events are
// dropped by the caller rather than surfaced as errors.
func (c *Client) CustomerEmail(ctx context.Context, customerID string) (string, bool, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	cust, err := c.api.Customers.Get(customerID, params)
	if err != nil {
		return "", false, fmt.Errorf("retrieve customer %s: %w", customerID, err)
	}
	if cust.Deleted || cust.Email == "" {
		return "", false, nil
	}
	return cust.Email, true, nil
}

// FindCustomerByEmail looks up the processor customer id for an email.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("email:%q", email),
			Context: ctx,
		},
	}
	iter := c.api.Customers.Search(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("search customer by email: %w", err)
	}
	return "", ErrCustomerNotFound
}

// CancelActiveSubscriptions cancels every active subscription for the
// customer and returns how many were cancelled.
func (c *Client) CancelActiveSubscriptions(ctx context.Context, customerID string) (int, error) {
	listParams := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	listParams.Context = ctx

	cancelled := 0
	iter := c.api.Subscriptions.List(listParams)
	for iter.Next() {
		sub := iter.Subscription()
		cancelParams := &stripe.SubscriptionCancelParams{}
		cancelParams.Context = ctx
		if _, err := c.api.Subscriptions.Cancel(sub.ID, cancelParams); err != nil {
			return cancelled, fmt.Errorf("cancel subscription %s: %w", sub.ID, err)
		}
		c.logger.Info("cancelled subscription", zap.String("subscription_id", sub.ID))
		cancelled++
	}
	if err := iter.Err(); err != nil {
		return cancelled, fmt.Errorf("list subscriptions: %w", err)
	}
	return cancelled, nil
}

// safePrefix returns the first 12 chars of the key for logging, never the
// full key.
func safePrefix(key string) string {
	if len(key) < 12 {
		return "***"
	}
	return key[:12]
}
