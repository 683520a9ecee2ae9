package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/service"
	"github.com/careconnect/careconnect/internal/service/payment"
)

type donationHandler struct {
	donationService *service.DonationService
	causeService    *service.CauseService
	provider        payment.Provider
}

func NewDonationHandler(donationService *service.DonationService, causeService *service.CauseService, provider payment.Provider) *donationHandler {
	return &donationHandler{
		donationService: donationService,
		causeService:    causeService,
		provider:        provider,
	}
}

type createDonationRequest struct {
	CauseID string `json:"causeId" validate:"required"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
}

// Create records a donation directly, without going through checkout.
func (h *donationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	donation, err := h.donationService.Record(ctxkeys.Principal(r.Context()), req.CauseID, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, donation)
}

// List returns the caller's side of the ledger: volunteers see what they
// gave, NGOs see what their causes received.
func (h *donationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if user.Role.IsNGO() {
		donations, err := h.donationService.ByNGO(user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, donations)
		return
	}

	donations, err := h.donationService.ByVolunteer(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, donations)
}

// Checkout creates a hosted payment session; the donation is recorded
// when the provider's webhook confirms payment.
func (h *donationHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := ctxkeys.User(r.Context())
	if !user.Role.IsVolunteer() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	cause, err := h.causeService.ByID(req.CauseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	url, err := h.provider.CreateCheckoutURL(cause.ID, cause.Title, user.ID, user.Email, req.Amount)
	if err != nil {
		if err == payment.ErrNotConfigured {
			respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		slog.Error("failed to create checkout", "error", err, "cause_id", cause.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Webhook receives provider events. Signature verification happens in
// the provider; a verified failure still returns 200 to stop retries of
// events we will never be able to process.
func (h *donationHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	err = h.provider.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Error("webhook processing failed", "error", err)
		respondError(w, http.StatusBadRequest, "webhook processing failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}
