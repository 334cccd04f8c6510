package service

import (
	"context"
	"errors"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type alertKey struct {
	userID uuid.UUID
	slotID uuid.UUID
}

type dailyKey struct {
	userID uuid.UUID
	date   string
}

// memStore хранилище в памяти с теми же контрактами, что и у pgx-репозиториев
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users       map[uuid.UUID]model.User
	settings    map[uuid.UUID]model.Settings
	shares      map[uuid.UUID]model.Share
	slots       map[uuid.UUID]model.TimeSlot
	alerts      map[alertKey]model.AlertRecord
	dailyAlerts map[dailyKey]model.DailyAlertRecord

	externalLookups map[int64]int
}

func newMemStore() *memStore {
	return &memStore{
		users:           map[uuid.UUID]model.User{},
		settings:        map[uuid.UUID]model.Settings{},
		shares:          map[uuid.UUID]model.Share{},
		slots:           map[uuid.UUID]model.TimeSlot{},
		alerts:          map[alertKey]model.AlertRecord{},
		dailyAlerts:     map[dailyKey]model.DailyAlertRecord{},
		externalLookups: map[int64]int{},
	}
}

func (s *memStore) repositories() Repositories {
	return Repositories{
		Users:       memUsers{s},
		Settings:    memSettings{s},
		Shares:      memShares{s},
		TimeSlots:   memTimeSlots{s},
		Alerts:      memAlerts{s},
		DailyAlerts: memDailyAlerts{s},
	}
}

// InTx выполняет транзакции по очереди и откатывает изменения при ошибке
func (s *memStore) InTx(ctx context.Context, fn func(r Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	users, settings, shares := maps.Clone(s.users), maps.Clone(s.settings), maps.Clone(s.shares)
	slots, alerts, daily := maps.Clone(s.slots), maps.Clone(s.alerts), maps.Clone(s.dailyAlerts)
	s.mu.Unlock()

	if err := fn(s.repositories()); err != nil {
		s.mu.Lock()
		s.users, s.settings, s.shares = users, settings, shares
		s.slots, s.alerts, s.dailyAlerts = slots, alerts, daily
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) slot(id uuid.UUID) model.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[id]
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ExternalID == user.ExternalID {
			return model.ErrConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByExternalID(_ context.Context, externalID int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.externalLookups[externalID]++
	for _, u := range r.s.users {
		if u.ExternalID == externalID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) LockForUpdate(context.Context, uuid.UUID) error {
	return nil
}

type memSettings struct{ s *memStore }

func (r memSettings) Create(_ context.Context, settings *model.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.settings[settings.UserID]; ok {
		return model.ErrConflict
	}
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	r.s.settings[settings.UserID] = *settings
	return nil
}

func (r memSettings) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.settings[userID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// GetByUserIDForUpdate в памяти совпадает с GetByUserID: InTx и так выполняет транзакции по очереди
func (r memSettings) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*model.Settings, error) {
	return r.GetByUserID(ctx, userID)
}

func (r memSettings) Update(_ context.Context, settings *model.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.settings[settings.UserID]; !ok {
		return errors.New("settings not found")
	}
	r.s.settings[settings.UserID] = *settings
	return nil
}

func (r memSettings) ListWithDailyReminder(context.Context) ([]*model.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*model.Settings
	for _, st := range r.s.settings {
		if st.DailyReminderTime != nil {
			list = append(list, &st)
		}
	}
	return list, nil
}

type memShares struct{ s *memStore }

func (r memShares) Create(_ context.Context, share *model.Share) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sh := range r.s.shares {
		if sh.OwnerID == share.OwnerID || sh.Token == share.Token {
			return model.ErrConflict
		}
	}
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	r.s.shares[share.ID] = *share
	return nil
}

func (r memShares) GetByToken(_ context.Context, token string) (*model.Share, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sh := range r.s.shares {
		if sh.Token == token {
			return &sh, nil
		}
	}
	return nil, nil
}

func (r memShares) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (*model.Share, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sh := range r.s.shares {
		if sh.OwnerID == ownerID {
			return &sh, nil
		}
	}
	return nil, nil
}

type memTimeSlots struct{ s *memStore }

func (r memTimeSlots) Create(_ context.Context, slot *model.TimeSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	slot.CreatedAt = time.Now().UTC()
	r.s.slots[slot.ID] = *slot
	return nil
}

func (r memTimeSlots) GetByID(_ context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r memTimeSlots) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return r.GetByID(ctx, id)
}

func (r memTimeSlots) Update(_ context.Context, slot *model.TimeSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.slots[slot.ID]; !ok {
		return errors.New("time slot not found")
	}
	r.s.slots[slot.ID] = *slot
	return nil
}

func (r memTimeSlots) FindConfirmedForUserOnDate(_ context.Context, userID uuid.UUID, dayStart time.Time) ([]*model.TimeSlot, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	return r.filter(func(t model.TimeSlot) bool {
		return t.HasParticipant(userID) && t.IsConfirmed() &&
			t.MeetStartAt.Before(dayEnd) && t.MeetEndAt.After(dayStart)
	}), nil
}

func (r memTimeSlots) FindOverlappingConfirmed(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*model.TimeSlot, error) {
	return r.filter(func(t model.TimeSlot) bool {
		return t.HasParticipant(userID) && t.IsConfirmed() &&
			t.MeetStartAt.Before(end) && t.MeetEndAt.After(start)
	}), nil
}

func (r memTimeSlots) FindUpcomingConfirmed(_ context.Context, now time.Time) ([]*model.TimeSlot, error) {
	return r.filter(func(t model.TimeSlot) bool {
		return t.IsConfirmed() && t.MeetEndAt.After(now)
	}), nil
}

func (r memTimeSlots) filter(keep func(model.TimeSlot) bool) []*model.TimeSlot {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*model.TimeSlot
	for _, t := range r.s.slots {
		if keep(t) {
			out = append(out, &t)
		}
	}
	return out
}

type memAlerts struct{ s *memStore }

func (r memAlerts) Exists(_ context.Context, userID, timeSlotID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.alerts[alertKey{userID, timeSlotID}]
	return ok, nil
}

func (r memAlerts) Create(_ context.Context, alert *model.AlertRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := alertKey{alert.UserID, alert.TimeSlotID}
	if _, ok := r.s.alerts[key]; ok {
		return false, nil
	}
	r.s.alerts[key] = *alert
	return true, nil
}

type memDailyAlerts struct{ s *memStore }

func (r memDailyAlerts) Exists(_ context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.dailyAlerts[dailyKey{userID, date.Format(time.DateOnly)}]
	return ok, nil
}

func (r memDailyAlerts) Create(_ context.Context, alert *model.DailyAlertRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := dailyKey{alert.UserID, alert.Date.Format(time.DateOnly)}
	if _, ok := r.s.dailyAlerts[key]; ok {
		return false, nil
	}
	r.s.dailyAlerts[key] = *alert
	return true, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

func (n *recordingNotifier) OfType(t notify.EventType) []notify.Event {
	var out []notify.Event
	for _, ev := range n.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type fakeMeetings struct {
	url   string
	err   error
	calls int
}

func (f *fakeMeetings) CreateMeeting(context.Context, uuid.UUID, string, string) (string, error) {
	f.calls++
	return f.url, f.err
}

type fakeParser struct {
	slot *model.ParsedSlot
	err  error
}

func (f fakeParser) ParseFreeText(context.Context, string) (*model.ParsedSlot, error) {
	return f.slot, f.err
}

type testEnv struct {
	store        *memStore
	repos        Repositories
	notifier     *recordingNotifier
	meetings     *fakeMeetings
	users        *UserService
	settings     *SettingsService
	shares       *ShareService
	availability *AvailabilityService
	booking      *BookingService
	reminders    *ReminderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	repos := store.repositories()
	notifier := &recordingNotifier{}
	meetings := &fakeMeetings{url: "https://jazz.example/room/1"}
	logger := zap.NewNop()

	avail := NewAvailabilityService(repos, logger)
	return &testEnv{
		store:        store,
		repos:        repos,
		notifier:     notifier,
		meetings:     meetings,
		users:        NewUserService(repos, store, logger),
		settings:     NewSettingsService(repos, store, logger),
		shares:       NewShareService(repos, "https://t.me/meeting_bot?start=", logger),
		availability: avail,
		booking:      NewBookingService(repos, store, meetings, notifier, logger),
		reminders:    NewReminderService(repos, avail, notifier, logger),
	}
}

// addUser регистрирует пользователя с заданными настройками
func (e *testEnv) addUser(t *testing.T, externalID int64, settings model.Settings) *model.User {
	t.Helper()
	ctx := context.Background()

	user := &model.User{ExternalID: externalID, Name: "user", Username: "user"}
	require.NoError(t, e.repos.Users.Create(ctx, user))

	settings.UserID = user.ID
	require.NoError(t, e.repos.Settings.Create(ctx, &settings))
	return user
}

// addSlot сохраняет встречу напрямую, время в наивном UTC
func (e *testEnv) addSlot(t *testing.T, owner, invited uuid.UUID, start, end time.Time, status model.SlotStatus) *model.TimeSlot {
	t.Helper()
	slot := &model.TimeSlot{
		OwnerID:     owner,
		InvitedID:   invited,
		MeetStartAt: start,
		MeetEndAt:   end,
		Status:      status,
		Title:       "Созвон",
	}
	require.NoError(t, e.repos.TimeSlots.Create(context.Background(), slot))
	return slot
}

func (e *testEnv) shareToken(t *testing.T, externalID int64) string {
	t.Helper()
	token, err := e.shares.GetShareToken(context.Background(), externalID)
	require.NoError(t, err)
	return token
}

func ptr[T any](v T) *T {
	return &v
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func mask(days ...time.Weekday) *model.WorkingDays {
	var m model.WorkingDays
	for _, d := range days {
		m |= 1 << model.WeekdayIndex(d)
	}
	return &m
}
