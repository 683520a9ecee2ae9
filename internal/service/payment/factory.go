package payment

import (
	"errors"
	"log/slog"
	"net/http"
)

// NewProvider returns the configured payment provider. Without a Stripe
// key the noop provider keeps the rest of the app working; only checkout
// itself is unavailable.
func NewProvider(stripeSecretKey, stripeWebhookSecret, appURL string, recorder Recorder) Provider {
	if stripeSecretKey == "" {
		slog.Info("no payment provider configured, checkout disabled")
		return &NoopProvider{}
	}

	return NewStripeProvider(stripeSecretKey, stripeWebhookSecret, appURL, recorder)
}

var ErrNotConfigured = errors.New("payment provider not configured")

type NoopProvider struct{}

func (p *NoopProvider) Name() string {
	return "noop"
}

func (p *NoopProvider) CreateCheckoutURL(causeID, causeTitle, donorID, donorEmail string, amountCents int64) (string, error) {
	return "", ErrNotConfigured
}

func (p *NoopProvider) HandleWebhook(payload []byte, headers http.Header) error {
	slog.Warn("webhook received but no payment provider configured")
	return nil
}
