package service

import (
	"context"
	"time"

	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/logging"
)

// ExpireIdleSessions drops sessions quiet for longer than ttl. A zero ttl
// disables expiry. It returns how many sessions were dropped.
func (s *Service) ExpireIdleSessions(ctx context.Context, now time.Time, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-ttl)
	expired := 0
	for _, id := range s.engine.IdleSessions(cutoff) {
		if ctx.Err() != nil {
			break
		}
		unlock := s.locks.Lock(id)
		kind, ok := s.engine.ExpireIfIdle(id, cutoff)
		unlock()
		if ok {
			expired++
			logging.Info("idle session expired", logging.Fields{
				constants.LogFieldPlayerID: id,
				constants.LogFieldKind:     string(kind),
			})
		}
	}
	return expired
}
