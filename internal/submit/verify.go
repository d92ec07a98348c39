// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Token form fields, in lookup order.
const (
	TurnstileField = "cf-turnstile-response"
	RecaptchaField = "g-recaptcha-response"
)

// DefaultVerifyURL is the Turnstile siteverify endpoint.
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// TokenFromForm returns the verification token posted by the widget.
func TokenFromForm(v url.Values) string {
	if t := strings.TrimSpace(v.Get(TurnstileField)); t != "" {
		return t
	}
	return strings.TrimSpace(v.Get(RecaptchaField))
}

// CaptchaVerifier checks tokens issued by the verification widget. Without
// a site key the widget is never shown, so every token is refused. With a
// secret the token is confirmed against siteverify; without one its
// presence is enough.
type CaptchaVerifier struct {
	siteKey   string
	secret    string
	verifyURL string
	http      *http.Client
}

// NewCaptchaVerifier creates a verifier. An empty verifyURL uses
// DefaultVerifyURL.
func NewCaptchaVerifier(siteKey, secret, verifyURL string) *CaptchaVerifier {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	return &CaptchaVerifier{
		siteKey:   siteKey,
		secret:    secret,
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// SiteKey returns the widget key for templates; empty disables the widget.
func (v *CaptchaVerifier) SiteKey() string { return v.siteKey }

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify implements Verifier.
func (v *CaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if v.siteKey == "" {
		return fmt.Errorf("%w: no site key configured", ErrVerificationMissing)
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: no token", ErrVerificationMissing)
	}
	if v.secret == "" {
		return nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: build siteverify request: %v", ErrVerificationMissing, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: siteverify: %v", ErrVerificationMissing, err)
	}
	defer resp.Body.Close()

	var out siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil {
		return fmt.Errorf("%w: siteverify status %d: %v", ErrVerificationMissing, resp.StatusCode, err)
	}
	if !out.Success {
		return fmt.Errorf("%w: token rejected %v", ErrVerificationMissing, out.ErrorCodes)
	}
	return nil
}
