package lattice

import "time"

// passStats holds per-pass timing and change counts.
// Only populated when Config.Debug is true.
type passStats struct {
	mode       string
	ran        int
	failed     int
	changes    int
	renderTime time.Duration
	pushTime   time.Duration
}

// debugLog prints pass stats through the engine logger.
func (e *Engine) debugLog(s *Session, stats passStats) {
	if !e.cfg.Debug {
		return
	}
	e.logger.Printf("session %s (%s) %s pass: render: %v | push: %v | total: %v",
		s.id, s.viewer, stats.mode, stats.renderTime, stats.pushTime, stats.renderTime+stats.pushTime)
	e.logger.Printf("session %s (%s) transforms: %d | failed: %d | cells changed: %d",
		s.id, s.viewer, stats.ran, stats.failed, stats.changes)
	if stats.ran > 0 && stats.changes == 0 && stats.mode == "partial" {
		e.logger.Printf("warning: session %s partial pass ran %d transform(s) without changing a cell",
			s.id, stats.ran)
	}
}
