package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/logging"
)

// run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *app) run(ctx context.Context) error {
	if a.cfg.SessionIdleTTL > 0 {
		go a.sweepIdleSessions(ctx, a.cfg.SessionIdleTTL)
	}

	errc := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// sweepIdleSessions periodically drops encounters nobody has touched for
// ttl. Cooldowns already recorded stay in place.
func (a *app) sweepIdleSessions(ctx context.Context, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.svc.ExpireIdleSessions(ctx, now, ttl); n > 0 {
				logging.Info("idle sweep finished", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}
}
