package bot

import (
	"time"

	"go.uber.org/zap"
)

const overdueSweepInterval = 5 * time.Minute

// startBackgroundTasks re-arms persisted unmutes and starts the periodic
// sweep that catches timers lost to transient failures.
func (b *Bot) startBackgroundTasks() {
	if err := b.Unmutes.Restore(); err != nil {
		b.Logger.Error("failed to restore pending unmutes", zap.Error(err))
	}

	go func() {
		ticker := time.NewTicker(overdueSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.Unmutes.SweepOverdue()
			case <-b.done:
				return
			}
		}
	}()
}
