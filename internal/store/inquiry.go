// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the database access for persisted inquiries.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"dholerasite/internal/models"
)

// InquiryStore handles inquiry rows.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore creates a new InquiryStore with the given database connection.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// Create inserts an inquiry, assigning its ID and creation time.
func (s *InquiryStore) Create(ctx context.Context, q *models.Inquiry) error {
	q.ID = uuid.New()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO inquiries (id, kind, name, email, phone, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, q.ID, q.Kind, q.Name, q.Email, q.Phone, q.Message).Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}
