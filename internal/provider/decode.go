// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrEmptyDocument is returned for an absent body, `null` or `{}`.
var ErrEmptyDocument = fmt.Errorf("%w: empty document", ErrContentUnavailable)

// Decode interprets a response body as a complete replacement tree. Only a
// non-empty JSON object qualifies. The object is decoded into a fresh zero T,
// so every field it omits is absent, not defaulted. Fields of the wrong type
// are dropped and the rest of the document is kept.
func Decode[T any](body []byte) (*T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, ErrEmptyDocument
	}
	if body[0] != '{' {
		return nil, fmt.Errorf("%w: document is not an object", ErrContentUnavailable)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}
	if len(top) == 0 {
		return nil, ErrEmptyDocument
	}

	next := new(T)
	if err := json.Unmarshal(body, next); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
		}
		slog.Debug("content document has mistyped fields, dropping them",
			"field", typeErr.Field, "error", err)
	}
	return next, nil
}
