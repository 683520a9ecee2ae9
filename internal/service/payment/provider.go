package payment

import "net/http"

// Recorder persists a donation after the provider confirms the payment.
// The donation service implements it; the indirection keeps this package
// free of a dependency on the service layer.
type Recorder interface {
	RecordPaid(causeID, donorID string, amountCents int64) error
}

// Provider defines the interface a payment provider must implement.
type Provider interface {
	// CreateCheckoutURL creates a one-time checkout session for a
	// donation and returns the URL to redirect the donor to.
	CreateCheckoutURL(causeID, causeTitle, donorID, donorEmail string, amountCents int64) (string, error)

	// HandleWebhook processes webhook events from the payment provider
	HandleWebhook(payload []byte, headers http.Header) error

	// Name returns the provider name (e.g., "stripe")
	Name() string
}
