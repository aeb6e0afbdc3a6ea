package moderation

import (
	"sync"

	"cascade-bot/model"
)

// fakeActor records every side effect and serves canned guild state.
type fakeActor struct {
	mu sync.Mutex

	ownerID  string
	members  map[string]*Member // key guildID:userID
	roles    []Role
	channels []Channel

	resolveErr    error
	removeRoleErr error
	createdRoleID string

	events       []string // side effects in call order
	addedRoles   []string // "guild:user:role"
	removedRoles []string
	kicked       []string
	banned       []string
	dms          []string
	overrides    map[string]MuteDeny // channelID -> deny
}

func newFakeActor() *fakeActor {
	return &fakeActor{
		ownerID:       "owner",
		members:       make(map[string]*Member),
		overrides:     make(map[string]MuteDeny),
		createdRoleID: "created-role",
	}
}

func (a *fakeActor) putMember(guildID string, m *Member) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.members[guildID+":"+m.UserID] = m
}

func (a *fakeActor) ResolveMember(guildID, userID string) (*Member, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resolveErr != nil {
		return nil, a.resolveErr
	}
	m, ok := a.members[guildID+":"+userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	cp.Roles = append([]string(nil), m.Roles...)
	return &cp, nil
}

func (a *fakeActor) GuildOwnerID(guildID string) (string, error) {
	return a.ownerID, nil
}

func (a *fakeActor) GuildRoles(guildID string) ([]Role, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Role(nil), a.roles...), nil
}

func (a *fakeActor) GuildChannels(guildID string) ([]Channel, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Channel(nil), a.channels...), nil
}

func (a *fakeActor) CreateRole(guildID, name string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, "create-role")
	a.roles = append(a.roles, Role{ID: a.createdRoleID, Name: name})
	return a.createdRoleID, nil
}

func (a *fakeActor) SetChannelPermissionOverride(channelID, roleID string, deny MuteDeny) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overrides[channelID] = deny
	return nil
}

func (a *fakeActor) AddRole(guildID, userID, roleID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, "add-role")
	a.addedRoles = append(a.addedRoles, guildID+":"+userID+":"+roleID)
	if m, ok := a.members[guildID+":"+userID]; ok {
		m.Roles = append(m.Roles, roleID)
	}
	return nil
}

func (a *fakeActor) RemoveRole(guildID, userID, roleID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.removeRoleErr != nil {
		return a.removeRoleErr
	}
	a.events = append(a.events, "remove-role")
	a.removedRoles = append(a.removedRoles, guildID+":"+userID+":"+roleID)
	if m, ok := a.members[guildID+":"+userID]; ok {
		kept := m.Roles[:0]
		for _, r := range m.Roles {
			if r != roleID {
				kept = append(kept, r)
			}
		}
		m.Roles = kept
	}
	return nil
}

func (a *fakeActor) Kick(guildID, userID, reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, "kick")
	a.kicked = append(a.kicked, userID)
	return nil
}

func (a *fakeActor) Ban(guildID, userID, reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, "ban")
	a.banned = append(a.banned, userID)
	return nil
}

func (a *fakeActor) SendDirectNotification(userID, content string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, "dm")
	a.dms = append(a.dms, userID)
	return nil
}

func (a *fakeActor) snapshot() (events, removed, dms []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.events...),
		append([]string(nil), a.removedRoles...),
		append([]string(nil), a.dms...)
}

// fakeStore is an in-memory Store and UnmuteStore.
type fakeStore struct {
	mu sync.Mutex

	nextActionID int64
	actions      []model.ModerationAction
	warnings     map[string]int64
	warnErr      error
	configs      map[string]*model.ServerConfig

	nextPendingID int64
	pending       map[int64]model.PendingUnmute
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		warnings: make(map[string]int64),
		configs:  make(map[string]*model.ServerConfig),
		pending:  make(map[int64]model.PendingUnmute),
	}
}

func (s *fakeStore) AppendAction(guildID, userID, moderatorID, actionType, reason string, durationSeconds int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextActionID++
	s.actions = append(s.actions, model.ModerationAction{
		ID:              s.nextActionID,
		GuildID:         guildID,
		UserID:          userID,
		ModeratorID:     moderatorID,
		ActionType:      actionType,
		Reason:          reason,
		DurationSeconds: durationSeconds,
	})
	return s.nextActionID, nil
}

func (s *fakeStore) IncrementWarningCount(userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warnErr != nil {
		return 0, s.warnErr
	}
	s.warnings[userID]++
	return s.warnings[userID], nil
}

func (s *fakeStore) ListActions(userID string) ([]model.ModerationAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ModerationAction
	for _, a := range s.actions {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) GetServerConfig(guildID string) (*model.ServerConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[guildID]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (s *fakeStore) UpsertServerConfig(guildID string, patch model.ServerConfigPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[guildID]
	if !ok {
		cfg = &model.ServerConfig{GuildID: guildID}
		s.configs[guildID] = cfg
	}
	if patch.Prefix != nil {
		cfg.Prefix = *patch.Prefix
	}
	if patch.ModRoleID != nil {
		cfg.ModRoleID = *patch.ModRoleID
	}
	if patch.AdminRoleID != nil {
		cfg.AdminRoleID = *patch.AdminRoleID
	}
	if patch.MuteRoleID != nil {
		cfg.MuteRoleID = *patch.MuteRoleID
	}
	if patch.LogChannelID != nil {
		cfg.LogChannelID = *patch.LogChannelID
	}
	if patch.ModLogChannelID != nil {
		cfg.ModLogChannelID = *patch.ModLogChannelID
	}
	if patch.WelcomeChannelID != nil {
		cfg.WelcomeChannelID = *patch.WelcomeChannelID
	}
	return nil
}

func (s *fakeStore) AddPendingUnmute(task model.PendingUnmute) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPendingID++
	task.ID = s.nextPendingID
	s.pending[task.ID] = task
	return task.ID, nil
}

func (s *fakeStore) DeletePendingUnmute(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	return nil
}

func (s *fakeStore) DeletePendingUnmuteByDetails(guildID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.pending {
		if t.GuildID == guildID && t.UserID == userID {
			delete(s.pending, id)
		}
	}
	return nil
}

func (s *fakeStore) ListPendingUnmutes() ([]model.PendingUnmute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PendingUnmute, 0, len(s.pending))
	for _, t := range s.pending {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeStore) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// fakeUnmuter records scheduled and cancelled unmutes without arming timers.
type fakeUnmuter struct {
	mu        sync.Mutex
	tasks     []model.PendingUnmute
	cancelled []string // "guild:user"
	err       error
}

func (u *fakeUnmuter) Schedule(task model.PendingUnmute) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	u.tasks = append(u.tasks, task)
	return nil
}

func (u *fakeUnmuter) Cancel(guildID, userID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cancelled = append(u.cancelled, guildID+":"+userID)
	return nil
}

func (u *fakeUnmuter) scheduled() []model.PendingUnmute {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]model.PendingUnmute(nil), u.tasks...)
}
