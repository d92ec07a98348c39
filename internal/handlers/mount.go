// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"dholerasite/internal/provider"
)

// errBudgetExceeded is returned by a wait that ran out of render budget.
var errBudgetExceeded = errors.New("render budget exceeded")

// mounted is the part of a provider.Mount a page needs once the tree is
// picked up.
type mounted interface {
	Wait(ctx context.Context) bool
	Unmount()
}

// pageMount is one page visit: every section mounted for it, settled
// together and unmounted together.
type pageMount struct {
	ctx    context.Context
	mounts []mounted
}

func newPageMount(ctx context.Context) *pageMount {
	return &pageMount{ctx: ctx}
}

// mountSection mounts a provider as part of the page and returns its mount.
func mountSection[T any](pm *pageMount, p *provider.Provider[T]) *provider.Mount[T] {
	m := p.Mount(pm.ctx)
	pm.mounts = append(pm.mounts, m)
	return m
}

// settle waits until every mount settled or the budget ran out. Sections
// that are still fetching render their default.
func (pm *pageMount) settle(budget time.Duration) {
	ctx, cancel := context.WithTimeout(pm.ctx, budget)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range pm.mounts {
		g.Go(func() error {
			if !m.Wait(gctx) {
				return errBudgetExceeded
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Debug("rendering before every section settled", "budget", budget, "error", err)
	}
}

// unmount ends every mount; fetches still in flight are discarded when they
// complete.
func (pm *pageMount) unmount() {
	for _, m := range pm.mounts {
		m.Unmount()
	}
}
