package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-insights/components/preferences"
)

// AccountResolver extracts the account id for a request. The default
// reads the X-Account-ID header and falls back to "default".
type AccountResolver func(r *http.Request) string

// Handlers exposes the onboarding flow over HTTP.
type Handlers struct {
	Service *Service
	Account AccountResolver
}

// NewHandlers wires handlers around the service.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{Service: service, Account: defaultAccountResolver}
}

func defaultAccountResolver(r *http.Request) string {
	if id := r.Header.Get("X-Account-ID"); id != "" {
		return id
	}
	return "default"
}

func (h *Handlers) accountID(r *http.Request) string {
	if h.Account != nil {
		return h.Account(r)
	}
	return defaultAccountResolver(r)
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.Status(r.Context(), h.accountID(r))
	if errors.Is(err, ErrAccountNotFound) {
		writeJSON(w, http.StatusOK, Status{})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type websiteTypePayload struct {
	WebsiteType string `json:"website_type"`
	WebsiteURL  string `json:"website_url"`
}

func (h *Handlers) HandleSaveWebsiteType(w http.ResponseWriter, r *http.Request) {
	var payload websiteTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	websiteType, err := preferences.ParseWebsiteType(payload.WebsiteType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	account, err := h.Service.SaveWebsiteType(r.Context(), h.accountID(r), websiteType, payload.WebsiteURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handlers) HandleGenerateTrackingID(w http.ResponseWriter, r *http.Request) {
	trackingID, err := h.Service.GenerateTrackingID(r.Context(), h.accountID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"tracking_id": trackingID})
}

func (h *Handlers) HandleComplete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Complete(r.Context(), h.accountID(r))
	switch {
	case errors.Is(err, ErrWebsiteTypeRequired), errors.Is(err, ErrTrackingIDRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handlers) HandleSkip(w http.ResponseWriter, r *http.Request) {
	account, err := h.Service.Skip(r.Context(), h.accountID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handlers) HandleVerifyTracking(w http.ResponseWriter, r *http.Request) {
	verification, err := h.Service.VerifyTracking(r.Context(), h.accountID(r))
	switch {
	case errors.Is(err, ErrTrackingIDRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, verification)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
