package moderation

import (
	"fmt"
	"sync"
	"time"

	"cascade-bot/model"

	"go.uber.org/zap"
)

// UnmuteScheduler arms one timer per pending unmute. Entries are keyed by
// guild and user so a re-mute cancels and replaces the earlier timer instead
// of stacking a second one. Every entry is backed by a pending_unmutes row
// and re-armed from storage after a restart.
type UnmuteScheduler struct {
	actor  Actor
	store  UnmuteStore
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingEntry
	stopped bool
	wg      sync.WaitGroup
}

type pendingEntry struct {
	id     int64
	cancel chan struct{}
}

// NewUnmuteScheduler creates a scheduler. Call Restore once the session is
// open, and Stop on shutdown.
func NewUnmuteScheduler(actor Actor, store UnmuteStore, logger *zap.Logger) *UnmuteScheduler {
	return &UnmuteScheduler{
		actor:   actor,
		store:   store,
		logger:  logger.Named("unmute"),
		pending: make(map[string]*pendingEntry),
	}
}

func unmuteKey(guildID, userID string) string {
	return guildID + ":" + userID
}

// Schedule persists the pending unmute and arms its timer. It returns once
// the row is written; the removal itself runs asynchronously when the delay
// elapses.
func (s *UnmuteScheduler) Schedule(task model.PendingUnmute) error {
	id, err := s.store.AddPendingUnmute(task)
	if err != nil {
		return fmt.Errorf("failed to persist pending unmute: %w", err)
	}
	task.ID = id
	s.arm(task)
	return nil
}

// Restore re-arms all persisted entries. Entries whose fire time has already
// passed fire immediately.
func (s *UnmuteScheduler) Restore() error {
	tasks, err := s.store.ListPendingUnmutes()
	if err != nil {
		return fmt.Errorf("failed to load pending unmutes: %w", err)
	}
	for _, task := range tasks {
		s.arm(task)
	}
	if len(tasks) > 0 {
		s.logger.Info("Restored pending unmutes", zap.Int("count", len(tasks)))
	}
	return nil
}

// arm installs the timer for a task, cancelling any prior entry for the
// same guild/user pair.
func (s *UnmuteScheduler) arm(task model.PendingUnmute) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	key := unmuteKey(task.GuildID, task.UserID)
	if prior, ok := s.pending[key]; ok {
		close(prior.cancel)
		if prior.id != task.ID {
			if err := s.store.DeletePendingUnmute(prior.id); err != nil {
				s.logger.Warn("Failed to delete replaced pending unmute",
					zap.Int64("id", prior.id), zap.Error(err))
			}
		}
	}
	entry := &pendingEntry{id: task.ID, cancel: make(chan struct{})}
	s.pending[key] = entry
	s.wg.Add(1)
	go s.run(task, entry.cancel)
	s.mu.Unlock()
}

func (s *UnmuteScheduler) run(task model.PendingUnmute, cancel <-chan struct{}) {
	defer s.wg.Done()
	timer := time.NewTimer(time.Until(task.FireAt))
	defer timer.Stop()
	select {
	case <-timer.C:
		s.fire(task, cancel)
		s.finish(task)
	case <-cancel:
	}
}

// fire attempts the role removal. A member who left, a role already removed
// by hand, or a deleted role all resolve as silent no-ops. Removal failures
// are logged without retry.
func (s *UnmuteScheduler) fire(task model.PendingUnmute, cancel <-chan struct{}) {
	member, err := s.actor.ResolveMember(task.GuildID, task.UserID)
	if err != nil {
		s.logger.Warn("Failed to resolve member for unmute",
			zap.String("guildID", task.GuildID), zap.String("userID", task.UserID), zap.Error(err))
		return
	}
	if member == nil {
		return
	}

	hasRole := false
	for _, roleID := range member.Roles {
		if roleID == task.RoleID {
			hasRole = true
			break
		}
	}
	if !hasRole {
		return
	}

	// A re-mute can replace this entry between the timer firing and the role
	// removal. The replaced entry must not strip the fresh mute role.
	select {
	case <-cancel:
		return
	default:
	}

	if err := s.actor.RemoveRole(task.GuildID, task.UserID, task.RoleID); err != nil {
		s.logger.Error("Failed to remove expired mute role",
			zap.String("guildID", task.GuildID),
			zap.String("userID", task.UserID),
			zap.String("roleID", task.RoleID),
			zap.Error(err))
		return
	}

	if err := s.actor.SendDirectNotification(task.UserID, "Your mute has expired."); err != nil {
		s.logger.Debug("Could not DM unmuted user", zap.String("userID", task.UserID), zap.Error(err))
	}
	s.logger.Info("Removed expired mute role",
		zap.String("guildID", task.GuildID),
		zap.String("userID", task.UserID),
		zap.String("roleID", task.RoleID))
}

// finish drops the in-memory entry and its row once the timer has fired.
func (s *UnmuteScheduler) finish(task model.PendingUnmute) {
	key := unmuteKey(task.GuildID, task.UserID)
	s.mu.Lock()
	if entry, ok := s.pending[key]; ok && entry.id == task.ID {
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if err := s.store.DeletePendingUnmute(task.ID); err != nil {
		s.logger.Warn("Failed to delete fired pending unmute",
			zap.Int64("id", task.ID), zap.Error(err))
	}
}

// Cancel drops the timer and any persisted rows for a guild member. Used
// when the mute is lifted before it expires.
func (s *UnmuteScheduler) Cancel(guildID, userID string) error {
	key := unmuteKey(guildID, userID)
	s.mu.Lock()
	if entry, ok := s.pending[key]; ok {
		close(entry.cancel)
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if err := s.store.DeletePendingUnmuteByDetails(guildID, userID); err != nil {
		return fmt.Errorf("failed to delete pending unmutes: %w", err)
	}
	return nil
}

// SweepOverdue fires any persisted entry that is past due but has no live
// timer. This is a safety net behind the per-entry timers.
func (s *UnmuteScheduler) SweepOverdue() {
	tasks, err := s.store.ListPendingUnmutes()
	if err != nil {
		s.logger.Error("Failed to list pending unmutes for sweep", zap.Error(err))
		return
	}
	now := time.Now()
	for _, task := range tasks {
		if task.FireAt.After(now) {
			continue
		}
		s.mu.Lock()
		_, armed := s.pending[unmuteKey(task.GuildID, task.UserID)]
		s.mu.Unlock()
		if armed {
			continue
		}
		s.arm(task)
	}
}

// Stop cancels all timers and waits for in-flight fires to finish. Pending
// rows stay in storage for the next Restore.
func (s *UnmuteScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for key, entry := range s.pending {
		close(entry.cancel)
		delete(s.pending, key)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
