package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-13 вторник, 2026-10-14 среда
var (
	tuesday   = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
)

func TestGetExternalSlots_TimezoneShiftAndBothWorkWindows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.addUser(t, 1, model.Settings{
		Timezone:        3,
		WorkTimeStart:   ptr(9.0),
		WorkTimeEnd:     ptr(17.0),
		DurationMinutes: ptr(30),
	})
	env.addUser(t, 2, model.Settings{
		Timezone:      0,
		WorkTimeStart: ptr(9.0),
		WorkTimeEnd:   ptr(18.0),
	})
	// 12:00-12:30 у владельца = 09:00-09:30 UTC
	env.addSlot(t, owner.ID, owner.ID, at(wednesday, 9, 0), at(wednesday, 9, 30), model.SlotStatusConfirmed)

	slots, err := env.availability.GetExternalSlots(ctx, 2, env.shareToken(t, 1), wednesday)
	require.NoError(t, err)

	want := []availability.Slot{
		{Start: 9.0, End: 9.30}, {Start: 9.30, End: 10.0},
		{Start: 10.0, End: 10.30}, {Start: 10.30, End: 11.0},
		{Start: 11.0, End: 11.30}, {Start: 11.30, End: 12.0},
		{Start: 12.0, End: 12.30}, {Start: 12.30, End: 13.0},
		{Start: 13.0, End: 13.30}, {Start: 13.30, End: 14.0},
	}
	assert.Equal(t, want, slots)
	assert.NotContains(t, slots, availability.Slot{Start: 6.30, End: 7.0})
}

func TestGetExternalSlots_NonWorkingDaySkipsInvitedLookup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, 1, model.Settings{
		WorkTimeStart:   ptr(9.0),
		WorkTimeEnd:     ptr(17.0),
		DurationMinutes: ptr(30),
		WorkingDays:     mask(time.Monday, time.Wednesday, time.Thursday, time.Friday),
	})
	token := env.shareToken(t, 1)

	slots, err := env.availability.GetExternalSlots(ctx, 42, token, tuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Zero(t, env.store.externalLookups[42])

	_, err = env.availability.GetExternalSlots(ctx, 42, token, wednesday)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 1, env.store.externalLookups[42])
}

func TestGetExternalSlots_UnknownToken(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 2, model.Settings{})

	_, err := env.availability.GetExternalSlots(context.Background(), 2, "missing", wednesday)
	require.ErrorIs(t, err, ErrShareTokenNotFound)
}

func TestGetExternalSlots_InvitedBookingsAreBusy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, 1, model.Settings{
		WorkTimeStart:   ptr(9.0),
		WorkTimeEnd:     ptr(12.0),
		DurationMinutes: ptr(60),
	})
	invited := env.addUser(t, 2, model.Settings{})
	env.addSlot(t, invited.ID, invited.ID, at(wednesday, 10, 0), at(wednesday, 11, 0), model.SlotStatusConfirmed)
	// неподтверждённые встречи время не занимают
	env.addSlot(t, invited.ID, invited.ID, at(wednesday, 11, 0), at(wednesday, 12, 0), model.SlotStatusProposed)

	slots, err := env.availability.GetExternalSlots(ctx, 2, env.shareToken(t, 1), wednesday)
	require.NoError(t, err)
	assert.Equal(t, []availability.Slot{{Start: 9.0, End: 10.0}, {Start: 11.0, End: 12.0}}, slots)
}

func TestGetExternalSlots_OvernightMeetingIsBusy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, 1, model.Settings{
		WorkTimeStart:   ptr(0.0),
		WorkTimeEnd:     ptr(2.0),
		DurationMinutes: ptr(60),
	})
	invited := env.addUser(t, 2, model.Settings{})
	// началась накануне и заканчивается в 00:30
	env.addSlot(t, invited.ID, invited.ID, at(tuesday, 23, 30), at(wednesday, 0, 30), model.SlotStatusConfirmed)

	slots, err := env.availability.GetExternalSlots(ctx, 2, env.shareToken(t, 1), wednesday)
	require.NoError(t, err)
	assert.Equal(t, []availability.Slot{{Start: 1.0, End: 2.0}}, slots)

	items, err := env.availability.GetSelfSlotsByExternalID(ctx, 2, wednesday)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGetExternalSlots_OwnerWithoutWorkHours(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, model.Settings{Timezone: 3})
	env.addUser(t, 2, model.Settings{})

	slots, err := env.availability.GetExternalSlots(context.Background(), 2, env.shareToken(t, 1), wednesday)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetSelfSlots_LocalTimeAndOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.addUser(t, 1, model.Settings{Timezone: 3})
	other := env.addUser(t, 2, model.Settings{})

	late := env.addSlot(t, other.ID, user.ID, at(wednesday, 10, 0), at(wednesday, 10, 30), model.SlotStatusConfirmed)
	early := env.addSlot(t, user.ID, user.ID, at(wednesday, 6, 0), at(wednesday, 7, 0), model.SlotStatusConfirmed)
	env.addSlot(t, user.ID, other.ID, at(wednesday, 8, 0), at(wednesday, 9, 0), model.SlotStatusCancelled)
	// 22:00 UTC уже следующий день по местному времени
	env.addSlot(t, user.ID, user.ID, at(wednesday, 22, 0), at(wednesday, 23, 0), model.SlotStatusConfirmed)

	items, err := env.availability.GetSelfSlotsByExternalID(ctx, 1, wednesday)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, early.ID, items[0].Slot.ID)
	assert.Equal(t, availability.Slot{Start: 9.0, End: 10.0}, items[0].Local)
	assert.Equal(t, late.ID, items[1].Slot.ID)
	assert.Equal(t, availability.Slot{Start: 13.0, End: 13.30}, items[1].Local)
}

func TestGetSelfSlots_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.availability.GetSelfSlotsByExternalID(context.Background(), 7, wednesday)
	require.ErrorIs(t, err, ErrUserNotFound)
}
