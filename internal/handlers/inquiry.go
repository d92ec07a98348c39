// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"dholerasite/internal/models"
	"dholerasite/internal/submit"
)

// maxInquiryBody bounds the JSON body of an inquiry.
const maxInquiryBody = 64 << 10

// InquiryStore persists inquiries.
type InquiryStore interface {
	Create(ctx context.Context, q *models.Inquiry) error
}

// Inquiries is the receiving side of the form's internal sink.
type Inquiries struct {
	store InquiryStore
}

// NewInquiries creates the inquiry API handlers.
func NewInquiries(store InquiryStore) *Inquiries {
	return &Inquiries{store: store}
}

// Contact handles POST /api/contact-queries/submit.
func (h *Inquiries) Contact(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.InquiryContact)
}

// Investment handles POST /api/investment/submit.
func (h *Inquiries) Investment(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.InquiryInvestment)
}

func (h *Inquiries) create(w http.ResponseWriter, r *http.Request, kind models.InquiryKind) {
	var body submit.Fields
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInquiryBody))
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body."})
		return
	}
	if msg := validateInquiry(body); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	body = body.Trimmed()
	q := &models.Inquiry{
		Kind:  kind,
		Name:  body.Name,
		Email: body.Email,
		Phone: body.Phone,
	}
	if body.Message != "" {
		q.Message = &body.Message
	}

	if err := h.store.Create(r.Context(), q); err != nil {
		slog.Error("store inquiry failed", "kind", string(kind), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not store the inquiry."})
		return
	}

	slog.Info("inquiry stored", "kind", string(kind), "id", q.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": q.ID.String()})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", "error", err)
	}
}
