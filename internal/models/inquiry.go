// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// InquiryKind tells which form an inquiry came from.
type InquiryKind string

const (
	InquiryContact    InquiryKind = "contact"
	InquiryInvestment InquiryKind = "investment"
)

// Valid reports whether k is a known kind.
func (k InquiryKind) Valid() bool {
	return k == InquiryContact || k == InquiryInvestment
}

// Inquiry is a stored form submission.
type Inquiry struct {
	ID        uuid.UUID   `json:"id"`
	Kind      InquiryKind `json:"kind"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Message   *string     `json:"message,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
