// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"dholerasite/internal/submit"
)

// Validation limits for inquiry fields.
const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxPhoneLen   = 32
	maxMessageLen = 5_000
)

// validateInquiry checks inquiry fields and returns the first error found.
func validateInquiry(f submit.Fields) string {
	f = f.Trimmed()
	if f.Name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(f.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if f.Email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(f.Email) > maxEmailLen {
		return "Email is too long (max 254 characters)."
	}
	if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
		return "Email is not a valid address."
	}
	if f.Phone == "" {
		return "Phone is required."
	}
	if utf8.RuneCountInString(f.Phone) > maxPhoneLen {
		return "Phone is too long (max 32 characters)."
	}
	if strings.Trim(f.Phone, "+0123456789 -()") != "" {
		return "Phone may only contain digits, spaces and + - ( )."
	}
	if utf8.RuneCountInString(f.Message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}
