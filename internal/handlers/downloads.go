// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dholerasite/internal/storage"
)

// DownloadStore finds documents in the private bucket and signs links to them.
type DownloadStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Downloads redirects document links to short-lived signed URLs.
type Downloads struct {
	store    DownloadStore
	expiry   time.Duration
	notFound http.HandlerFunc
}

// NewDownloads creates the download handler. A nil store answers every
// download with notFound.
func NewDownloads(store DownloadStore, expiry time.Duration, notFound http.HandlerFunc) *Downloads {
	if expiry <= 0 {
		expiry = storage.DefaultDownloadExpiry
	}
	if notFound == nil {
		notFound = http.NotFound
	}
	return &Downloads{store: store, expiry: expiry, notFound: notFound}
}

// Serve handles GET /downloads/*.
func (d *Downloads) Serve(w http.ResponseWriter, r *http.Request) {
	key := storage.CleanKey(chi.URLParam(r, "*"))
	if d.store == nil || key == "" {
		d.notFound(w, r)
		return
	}

	ok, err := d.store.Exists(r.Context(), key)
	if err != nil {
		slog.Error("download lookup failed", "key", key, "error", err)
		http.Error(w, "Download temporarily unavailable", http.StatusBadGateway)
		return
	}
	if !ok {
		d.notFound(w, r)
		return
	}

	url, err := d.store.PresignedURL(r.Context(), key, d.expiry)
	if err != nil {
		slog.Error("download presign failed", "key", key, "error", err)
		http.Error(w, "Download temporarily unavailable", http.StatusBadGateway)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url, http.StatusFound)
}
