package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

const refreshTimeout = 2 * time.Minute

func (s *Server) refreshPeriod() time.Duration {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.RefreshPeriod()
}

func (s *Server) refreshLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.refreshPeriod())
	defer ticker.Stop()

	log.Info("repository refresh started", "period", s.refreshPeriod())

	for {
		select {
		case <-s.ctx.Done():
			log.Info("repository refresh stopped")
			return

		case <-ticker.C:
			func() {
				// Recover so one bad pass cannot kill the server.
				defer func() {
					if r := recover(); r != nil {
						log.Error("panic in refresh loop", "panic", r)
					}
				}()
				s.refreshOnce()
			}()
			// The period may have been hot-reloaded.
			ticker.Reset(s.refreshPeriod())
		}
	}
}

func (s *Server) refreshOnce() {
	ctx, cancel := context.WithTimeout(s.ctx, refreshTimeout)
	defer cancel()

	fresh, err := s.buildSnapshot(ctx)
	if err != nil {
		log.Error("refresh failed", "repo", s.owner+"/"+s.repo, "err", err)
		return
	}

	s.cacheMu.RLock()
	changed := snapshotChanged(s.cached, fresh)
	s.cacheMu.RUnlock()
	if !changed {
		return
	}

	s.cacheMu.Lock()
	s.cached = fresh
	s.cacheMu.Unlock()

	s.broadcastUpdate(MessageTypeSnapshot, fresh)
	log.Info("repository changed, broadcasting update",
		"commits", len(fresh.Commits),
		"branches", len(fresh.Branches),
		"markers", len(fresh.Layout.Markers))
}
