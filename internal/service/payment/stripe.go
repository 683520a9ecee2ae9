package payment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type StripeProvider struct {
	webhookSecret string
	appURL        string
	recorder      Recorder
}

func NewStripeProvider(secretKey, webhookSecret, appURL string, recorder Recorder) *StripeProvider {
	stripe.Key = secretKey

	slog.Info("stripe provider initialized")

	return &StripeProvider{
		webhookSecret: webhookSecret,
		appURL:        appURL,
		recorder:      recorder,
	}
}

func (s *StripeProvider) Name() string {
	return "stripe"
}

func (s *StripeProvider) CreateCheckoutURL(causeID, causeTitle, donorID, donorEmail string, amountCents int64) (string, error) {
	successURL := fmt.Sprintf("%s/causes/%s?donation=success&session_id={CHECKOUT_SESSION_ID}", s.appURL, causeID)
	cancelURL := fmt.Sprintf("%s/causes/%s", s.appURL, causeID)

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Donation to %s", causeTitle)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(donorEmail),
		Metadata: map[string]string{
			"cause_id": causeID,
			"donor_id": donorID,
			"amount":   strconv.FormatInt(amountCents, 10),
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "cause_id", causeID, "donor_id", donorID, "session_id", sess.ID)
	return sess.URL, nil
}

func (s *StripeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	signature := headers.Get("Stripe-Signature")

	// Use ConstructEventWithOptions to ignore API version mismatch
	// Stripe's API versions are backwards compatible, so this is safe
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	slog.Info("stripe webhook received", "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutSessionCompleted(event.Data.Raw)
	default:
		slog.Warn("stripe webhook unknown event type", "event_type", event.Type)
		return nil
	}
}

func (s *StripeProvider) handleCheckoutSessionCompleted(data json.RawMessage) error {
	var checkoutSession struct {
		ID            string            `json:"id"`
		AmountTotal   int64             `json:"amount_total"`
		PaymentStatus string            `json:"payment_status"`
		Metadata      map[string]string `json:"metadata"`
	}

	err := json.Unmarshal(data, &checkoutSession)
	if err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	if checkoutSession.PaymentStatus != "paid" {
		slog.Warn("stripe checkout completed but not paid, skipping", "session_id", checkoutSession.ID)
		return nil
	}

	causeID := checkoutSession.Metadata["cause_id"]
	donorID := checkoutSession.Metadata["donor_id"]
	if causeID == "" || donorID == "" {
		slog.Warn("stripe checkout session missing donation metadata, skipping", "session_id", checkoutSession.ID)
		return nil
	}

	// Trust the session's amount_total over the metadata copy.
	err = s.recorder.RecordPaid(causeID, donorID, checkoutSession.AmountTotal)
	if err != nil {
		return fmt.Errorf("failed to record donation: %w", err)
	}

	slog.Info("stripe donation recorded", "cause_id", causeID, "donor_id", donorID, "amount", checkoutSession.AmountTotal)
	return nil
}
