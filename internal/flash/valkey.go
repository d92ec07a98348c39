// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Valkey is a Backend on a Valkey (Redis-compatible) server.
type Valkey struct {
	client *redis.Client
}

// NewValkey wraps a connected client.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

// Put implements Backend.
func (v *Valkey) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return v.client.Set(ctx, key, payload, ttl).Err()
}

// Take implements Backend with GETDEL, so two reads never both see it.
func (v *Valkey) Take(ctx context.Context, key string) ([]byte, error) {
	payload, err := v.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
