// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/praedictus/internal/logging"
	"github.com/tomtom215/praedictus/internal/metrics"
	"github.com/tomtom215/praedictus/internal/store"
)

// StoreGCService periodically runs value-log garbage collection on the
// model store. GC failures are expected to repeat while the store is
// under pressure, so warnings are throttled instead of flooding the
// log at every tick.
type StoreGCService struct {
	store       *store.Store
	interval    time.Duration
	logThrottle rate.Sometimes
	name        string
}

// NewStoreGCService creates the GC loop for the given store.
func NewStoreGCService(st *store.Store, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StoreGCService{
		store:       st,
		interval:    interval,
		logThrottle: rate.Sometimes{First: 1, Interval: 15 * time.Minute},
		name:        "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.store.RunGC()
			switch {
			case errors.Is(err, store.ErrClosed):
				// Store shut down underneath us; stop cleanly.
				return nil
			case err != nil:
				metrics.StoreGCRuns.WithLabelValues("error").Inc()
				s.logThrottle.Do(func() {
					logging.Warn().Err(err).Msg("model store GC failed")
				})
			default:
				metrics.StoreGCRuns.WithLabelValues("success").Inc()
				logging.Debug().Msg("model store GC completed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *StoreGCService) String() string {
	return s.name
}
