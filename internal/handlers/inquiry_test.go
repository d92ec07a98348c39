// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"dholerasite/internal/models"
)

type memoryInquiries struct {
	err   error
	saved []models.Inquiry
}

func (m *memoryInquiries) Create(_ context.Context, q *models.Inquiry) error {
	if m.err != nil {
		return m.err
	}
	q.ID = uuid.New()
	m.saved = append(m.saved, *q)
	return nil
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact-queries/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestInquiryCreated(t *testing.T) {
	store := &memoryInquiries{}
	h := NewInquiries(store)

	w := postJSON(h.Contact, `{"name":" Asha ","email":"asha@example.com","phone":"+91 98765 43210","message":"Call me"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := uuid.Parse(resp["id"]); err != nil {
		t.Errorf("id: got %q", resp["id"])
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved: got %d", len(store.saved))
	}
	got := store.saved[0]
	if got.Kind != models.InquiryContact || got.Name != "Asha" {
		t.Errorf("saved inquiry: %+v", got)
	}
	if got.Message == nil || *got.Message != "Call me" {
		t.Error("message not stored")
	}
}

func TestInvestmentInquiryWithoutMessage(t *testing.T) {
	store := &memoryInquiries{}
	w := postJSON(NewInquiries(store).Investment, `{"name":"Ravi","email":"ravi@example.com","phone":"9876543210"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d", w.Code)
	}
	if store.saved[0].Kind != models.InquiryInvestment || store.saved[0].Message != nil {
		t.Errorf("saved inquiry: %+v", store.saved[0])
	}
}

func TestInquiryRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `name=Asha`},
		{"array", `[]`},
		{"missing name", `{"email":"a@example.com","phone":"1"}`},
		{"bad email", `{"name":"A","email":"not-an-email","phone":"1"}`},
		{"bad phone", `{"name":"A","email":"a@example.com","phone":"call me"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryInquiries{}
			w := postJSON(NewInquiries(store).Contact, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", w.Code)
			}
			if len(store.saved) != 0 {
				t.Error("invalid inquiry stored")
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Error("error body missing")
			}
		})
	}
}

func TestInquiryStoreFailure(t *testing.T) {
	w := postJSON(NewInquiries(&memoryInquiries{err: errors.New("db down")}).Contact,
		`{"name":"A","email":"a@example.com","phone":"1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Error("storage error leaked to the client")
	}
}
