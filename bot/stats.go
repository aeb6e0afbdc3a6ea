package bot

import (
	"sync/atomic"
	"time"
)

// Stats holds runtime counters exposed by the botinfo command.
type Stats struct {
	StartedAt         time.Time
	CommandsExecuted  atomic.Int64
	MessagesProcessed atomic.Int64
	EventsHandled     atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Uptime            time.Duration
	CommandsExecuted  int64
	MessagesProcessed int64
	EventsHandled     int64
}

func NewStats() *Stats {
	return &Stats{StartedAt: time.Now()}
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Uptime:            time.Since(s.StartedAt),
		CommandsExecuted:  s.CommandsExecuted.Load(),
		MessagesProcessed: s.MessagesProcessed.Load(),
		EventsHandled:     s.EventsHandled.Load(),
	}
}
