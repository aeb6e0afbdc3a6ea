package moderation

import (
	"fmt"
	"time"

	"cascade-bot/model"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MaxMuteDuration is the longest accepted mute (28 days).
const MaxMuteDuration = 28 * 24 * time.Hour

// Request carries the inputs of a single punishment command.
type Request struct {
	GuildID     string
	TargetID    string
	ModeratorID string
	Reason      string
	// Duration is the raw duration string; mute only.
	Duration string
}

// Result summarizes a successfully executed punishment.
type Result struct {
	ActionID   int64
	ActionType string
	// Duration and UnmuteAt are set for mutes only.
	Duration time.Duration
	UnmuteAt time.Time
	// WarningCount is set for warns; 0 when the counter update failed.
	WarningCount int64
}

// Coordinator validates and executes warn/mute/kick/ban: authority checks,
// the platform side effect, the audit write, the best-effort DM, and (for
// mutes) the deferred unmute.
type Coordinator struct {
	actor   Actor
	store   Store
	unmuter Unmuter
	logger  *zap.Logger

	// selfID is the bot's own user id, set once after the gateway session
	// identifies.
	selfID string

	muteRoleFlight singleflight.Group
}

// NewCoordinator wires a coordinator. SetSelfID must be called before the
// first command is served.
func NewCoordinator(actor Actor, store Store, unmuter Unmuter, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		actor:   actor,
		store:   store,
		unmuter: unmuter,
		logger:  logger.Named("moderation"),
	}
}

// SetSelfID records the bot's own user id for bot-target rejection.
func (c *Coordinator) SetSelfID(id string) {
	c.selfID = id
}

// checkAuthority enforces self-target, bot-target and hierarchy rules. It
// runs before any side effect.
func (c *Coordinator) checkAuthority(req Request) (*Member, error) {
	if req.TargetID == req.ModeratorID {
		return nil, &ValidationError{Message: "You cannot target yourself."}
	}
	if c.selfID != "" && req.TargetID == c.selfID {
		return nil, &ValidationError{Message: "You cannot target the bot."}
	}

	moderator, err := c.actor.ResolveMember(req.GuildID, req.ModeratorID)
	if err != nil {
		return nil, &ExecutionError{Op: "resolve moderator", Err: err}
	}
	if moderator == nil {
		return nil, &ExecutionError{Op: "resolve moderator", Err: fmt.Errorf("moderator %s not found in guild %s", req.ModeratorID, req.GuildID)}
	}

	target, err := c.actor.ResolveMember(req.GuildID, req.TargetID)
	if err != nil {
		return nil, &ExecutionError{Op: "resolve target", Err: err}
	}
	if target == nil {
		return nil, &ExecutionError{Op: "resolve target", Err: fmt.Errorf("user %s is not in guild %s", req.TargetID, req.GuildID)}
	}

	ownerID, err := c.actor.GuildOwnerID(req.GuildID)
	if err != nil {
		return nil, &ExecutionError{Op: "resolve guild owner", Err: err}
	}
	if moderator.TopRoleRank <= target.TopRoleRank && req.ModeratorID != ownerID {
		return nil, &AuthorityError{Message: "You cannot moderate someone with a higher or equal role."}
	}
	return target, nil
}

// appendAction writes the audit row. Failures become StorageError; the
// platform action has already happened and is not rolled back.
func (c *Coordinator) appendAction(req Request, actionType string, durationSeconds int64) (int64, error) {
	id, err := c.store.AppendAction(req.GuildID, req.TargetID, req.ModeratorID, actionType, req.Reason, durationSeconds)
	if err != nil {
		c.logger.Error("Failed to record moderation action",
			zap.String("actionType", actionType),
			zap.String("guildID", req.GuildID),
			zap.String("userID", req.TargetID),
			zap.Error(err))
		return 0, &StorageError{Err: err}
	}
	return id, nil
}

// notify DMs the target. Delivery failures are swallowed.
func (c *Coordinator) notify(userID, content string) {
	if err := c.actor.SendDirectNotification(userID, content); err != nil {
		c.logger.Debug("Could not DM user", zap.String("userID", userID), zap.Error(err))
	}
}

// Warn records a warning and bumps the target's warning counter. The
// counter update is best-effort: a storage failure there is logged but does
// not fail the warn.
func (c *Coordinator) Warn(req Request) (*Result, error) {
	if _, err := c.checkAuthority(req); err != nil {
		return nil, err
	}

	id, err := c.appendAction(req, model.ActionWarn, 0)
	if err != nil {
		return nil, err
	}

	count, err := c.store.IncrementWarningCount(req.TargetID)
	if err != nil {
		c.logger.Error("Failed to increment warning count",
			zap.String("userID", req.TargetID), zap.Error(err))
		count = 0
	}

	c.notify(req.TargetID, fmt.Sprintf("You have been warned. Reason: %s", req.Reason))
	c.logAction(model.ActionWarn, req, id)
	return &Result{ActionID: id, ActionType: model.ActionWarn, WarningCount: count}, nil
}

// Mute validates the duration, applies the muted role, records the action
// and registers the deferred unmute.
func (c *Coordinator) Mute(req Request) (*Result, error) {
	duration, err := ParseDuration(req.Duration)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid duration format. Use formats like: 1h, 30m, 1d, 2h30m"}
	}
	if duration > MaxMuteDuration {
		return nil, &ValidationError{Message: "Maximum mute duration is 28 days."}
	}

	if _, err := c.checkAuthority(req); err != nil {
		return nil, err
	}

	roleID, err := c.resolveMuteRole(req.GuildID)
	if err != nil {
		return nil, &ExecutionError{Op: "resolve mute role", Err: err}
	}
	if err := c.actor.AddRole(req.GuildID, req.TargetID, roleID); err != nil {
		return nil, &ExecutionError{Op: "add mute role", Err: err}
	}

	id, err := c.appendAction(req, model.ActionMute, int64(duration/time.Second))
	if err != nil {
		return nil, err
	}

	unmuteAt := time.Now().Add(duration)
	c.notify(req.TargetID, fmt.Sprintf("You have been muted for %s. Reason: %s", req.Duration, req.Reason))

	// Fire-and-forget relative to the command: a scheduling failure is
	// logged but the mute itself stands.
	task := model.PendingUnmute{
		GuildID: req.GuildID,
		UserID:  req.TargetID,
		RoleID:  roleID,
		FireAt:  unmuteAt,
	}
	if err := c.unmuter.Schedule(task); err != nil {
		c.logger.Error("Failed to schedule unmute",
			zap.String("guildID", req.GuildID),
			zap.String("userID", req.TargetID),
			zap.Error(err))
	}

	c.logAction(model.ActionMute, req, id)
	return &Result{
		ActionID:   id,
		ActionType: model.ActionMute,
		Duration:   duration,
		UnmuteAt:   unmuteAt,
	}, nil
}

// Unmute lifts a mute ahead of its expiry: the role is removed, the
// scheduled removal is cancelled and the lift is logged as its own action.
func (c *Coordinator) Unmute(req Request) (*Result, error) {
	target, err := c.checkAuthority(req)
	if err != nil {
		return nil, err
	}

	roleID, ok, err := c.lookupMuteRole(req.GuildID)
	if err != nil {
		return nil, &ExecutionError{Op: "resolve mute role", Err: err}
	}
	if !ok {
		return nil, &ValidationError{Message: "This server has no mute role."}
	}

	muted := false
	for _, r := range target.Roles {
		if r == roleID {
			muted = true
			break
		}
	}
	if !muted {
		return nil, &ValidationError{Message: "That member is not muted."}
	}

	if err := c.actor.RemoveRole(req.GuildID, req.TargetID, roleID); err != nil {
		return nil, &ExecutionError{Op: "remove mute role", Err: err}
	}
	if err := c.unmuter.Cancel(req.GuildID, req.TargetID); err != nil {
		c.logger.Warn("Failed to cancel scheduled unmute",
			zap.String("guildID", req.GuildID),
			zap.String("userID", req.TargetID),
			zap.Error(err))
	}

	id, err := c.appendAction(req, model.ActionUnmute, 0)
	if err != nil {
		return nil, err
	}
	c.notify(req.TargetID, "You have been unmuted.")
	c.logAction(model.ActionUnmute, req, id)
	return &Result{ActionID: id, ActionType: model.ActionUnmute}, nil
}

// Kick removes the target from the guild. The DM is sent before the kick
// since no shared guild remains afterwards.
func (c *Coordinator) Kick(req Request) (*Result, error) {
	if _, err := c.checkAuthority(req); err != nil {
		return nil, err
	}

	c.notify(req.TargetID, fmt.Sprintf("You have been kicked. Reason: %s", req.Reason))
	if err := c.actor.Kick(req.GuildID, req.TargetID, req.Reason); err != nil {
		return nil, &ExecutionError{Op: "kick", Err: err}
	}

	id, err := c.appendAction(req, model.ActionKick, 0)
	if err != nil {
		return nil, err
	}
	c.logAction(model.ActionKick, req, id)
	return &Result{ActionID: id, ActionType: model.ActionKick}, nil
}

// Ban bans the target. As with Kick, the DM precedes the action.
func (c *Coordinator) Ban(req Request) (*Result, error) {
	if _, err := c.checkAuthority(req); err != nil {
		return nil, err
	}

	c.notify(req.TargetID, fmt.Sprintf("You have been banned. Reason: %s", req.Reason))
	if err := c.actor.Ban(req.GuildID, req.TargetID, req.Reason); err != nil {
		return nil, &ExecutionError{Op: "ban", Err: err}
	}

	id, err := c.appendAction(req, model.ActionBan, 0)
	if err != nil {
		return nil, err
	}
	c.logAction(model.ActionBan, req, id)
	return &Result{ActionID: id, ActionType: model.ActionBan}, nil
}

func (c *Coordinator) logAction(actionType string, req Request, actionID int64) {
	c.logger.Info("Moderation action executed",
		zap.String("actionType", actionType),
		zap.String("guildID", req.GuildID),
		zap.String("userID", req.TargetID),
		zap.String("moderatorID", req.ModeratorID),
		zap.String("reason", req.Reason),
		zap.Int64("actionID", actionID))
}
