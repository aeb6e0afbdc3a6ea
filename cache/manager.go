package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Default TTLs for cached data.
const (
	CooldownTTL       = time.Minute
	MessageContentTTL = 24 * time.Hour
)

// Manager wraps the Redis client used for auxiliary hot data: command
// cooldowns, last-seen timestamps and recent message content. The bot runs
// without it; punishment correctness never depends on the cache.
type Manager struct {
	client rueidis.Client
	logger *zap.Logger
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// NewManager connects to Redis and returns the cache manager.
func NewManager(opts Options, logger *zap.Logger) (*Manager, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{opts.Addr},
		Username:    opts.Username,
		Password:    opts.Password,
		SelectDB:    opts.DB,
		ClientName:  "cascade-bot",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis client: %w", err)
	}
	return &Manager{client: client, logger: logger.Named("cache")}, nil
}

// NewManagerWithClient wraps an existing client. Used by tests.
func NewManagerWithClient(client rueidis.Client, logger *zap.Logger) *Manager {
	return &Manager{client: client, logger: logger.Named("cache")}
}

// Close shuts down the Redis connection.
func (m *Manager) Close() {
	m.client.Close()
}

// SetCooldown marks a command as used by a user for the TTL window.
func (m *Manager) SetCooldown(ctx context.Context, userID, command string, ttl time.Duration) error {
	key := fmt.Sprintf("cooldown:%s:%s", userID, command)
	cmd := m.client.B().Set().Key(key).Value("1").Ex(ttl).Build()
	if err := m.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to set cooldown %s: %w", key, err)
	}
	return nil
}

// OnCooldown reports whether the user still has an active cooldown for the
// command.
func (m *Manager) OnCooldown(ctx context.Context, userID, command string) (bool, error) {
	key := fmt.Sprintf("cooldown:%s:%s", userID, command)
	exists, err := m.client.Do(ctx, m.client.B().Exists().Key(key).Build()).AsBool()
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown %s: %w", key, err)
	}
	return exists, nil
}

// UpdateLastSeen records when a user was last active.
func (m *Manager) UpdateLastSeen(ctx context.Context, userID string, at time.Time) error {
	key := "lastseen:" + userID
	cmd := m.client.B().Set().Key(key).Value(strconv.FormatInt(at.Unix(), 10)).Build()
	if err := m.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to update last seen for %s: %w", userID, err)
	}
	return nil
}

// LastSeen returns the user's last activity time, or ok=false when unknown.
func (m *Manager) LastSeen(ctx context.Context, userID string) (time.Time, bool, error) {
	key := "lastseen:" + userID
	value, err := m.client.Do(ctx, m.client.B().Get().Key(key).Build()).ToString()
	if rueidis.IsRedisNil(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get last seen for %s: %w", userID, err)
	}
	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt last seen value for %s: %w", userID, err)
	}
	return time.Unix(unix, 0), true, nil
}

// CacheMessageContent keeps recent message content around so delete/edit
// events can be logged with what was said.
func (m *Manager) CacheMessageContent(ctx context.Context, messageID, content string) error {
	key := "message:" + messageID
	cmd := m.client.B().Set().Key(key).Value(content).Ex(MessageContentTTL).Build()
	if err := m.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to cache message %s: %w", messageID, err)
	}
	return nil
}

// CachedMessageContent returns the cached content of a message, or ok=false
// when it has expired or was never seen.
func (m *Manager) CachedMessageContent(ctx context.Context, messageID string) (string, bool, error) {
	key := "message:" + messageID
	value, err := m.client.Do(ctx, m.client.B().Get().Key(key).Build()).ToString()
	if rueidis.IsRedisNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cached message %s: %w", messageID, err)
	}
	return value, true, nil
}

// IncrCounter bumps a transient counter and returns the new value.
func (m *Manager) IncrCounter(ctx context.Context, name string) (int64, error) {
	key := "counter:" + name
	value, err := m.client.Do(ctx, m.client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return value, nil
}
