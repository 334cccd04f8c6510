package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"abc", "2026-10-14"}, CommandArgs("/book  abc 2026-10-14 "))
	assert.Empty(t, CommandArgs("/today"))
	assert.Nil(t, CommandArgs(""))
}

func TestParseBookArgs(t *testing.T) {
	token, date, err := ParseBookArgs([]string{"abc"}, today)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Equal(t, today, date)

	token, date, err = ParseBookArgs([]string{"abc", "14.10.2026"}, today)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), date)

	_, _, err = ParseBookArgs(nil, today)
	assert.ErrorIs(t, err, ErrBadArguments)

	_, _, err = ParseBookArgs([]string{"abc", "завтра"}, today)
	assert.ErrorIs(t, err, ErrBadArguments)
}

func TestParseSlotIDArg(t *testing.T) {
	id := uuid.New()
	got, err := ParseSlotIDArg([]string{id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseSlotIDArg(nil)
	assert.ErrorIs(t, err, ErrBadArguments)
	_, err = ParseSlotIDArg([]string{"42"})
	assert.ErrorIs(t, err, ErrBadArguments)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"9.30", 9.30, false},
		{"9:30", 9.30, false},
		{"18", 18, false},
		{"09:05", 9.05, false},
		{"9:5", 0, true},
		{"-1", 0, true},
		{"утро", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadArguments)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseSettingsArgs(t *testing.T) {
	patch, err := ParseSettingsArgs([]string{"tz=+3", "work=9:00-18.30", "duration=30", "alert=15", "daily=8.30", "days=пн,вт"})
	require.NoError(t, err)

	require.NotNil(t, patch.Timezone)
	assert.Equal(t, 3, *patch.Timezone)
	require.NotNil(t, patch.WorkTimeStart)
	assert.InDelta(t, 9.0, *patch.WorkTimeStart, 1e-9)
	require.NotNil(t, patch.WorkTimeEnd)
	assert.InDelta(t, 18.30, *patch.WorkTimeEnd, 1e-9)
	require.NotNil(t, patch.DurationMinutes)
	assert.Equal(t, 30, *patch.DurationMinutes)
	require.NotNil(t, patch.AlertOffsetMinutes)
	assert.Equal(t, 15, *patch.AlertOffsetMinutes)
	require.NotNil(t, patch.DailyReminderTime)
	assert.InDelta(t, 8.30, *patch.DailyReminderTime, 1e-9)
	assert.Equal(t, []string{"пн", "вт"}, patch.WorkingDays)
}

func TestParseSettingsArgs_PartialUpdate(t *testing.T) {
	patch, err := ParseSettingsArgs([]string{"tz=-5"})
	require.NoError(t, err)

	require.NotNil(t, patch.Timezone)
	assert.Equal(t, -5, *patch.Timezone)
	assert.Nil(t, patch.WorkTimeStart)
	assert.Nil(t, patch.DurationMinutes)
	assert.Nil(t, patch.WorkingDays)
}

func TestParseSettingsArgs_Invalid(t *testing.T) {
	cases := [][]string{
		nil,
		{"tz"},
		{"tz="},
		{"tz=moscow"},
		{"work=9.00"},
		{"work=9.00-вечер"},
		{"duration=half"},
		{"color=red"},
	}
	for _, args := range cases {
		_, err := ParseSettingsArgs(args)
		assert.ErrorIs(t, err, ErrBadArguments, "%v", args)
	}
}

func TestFormatSettings(t *testing.T) {
	start, end := 9.0, 18.30
	duration, alert := 30, 15
	days := model.WorkingDaysFromNames([]string{"пн", "ср"})

	text := FormatSettings(&model.Settings{
		Timezone:           3,
		WorkTimeStart:      &start,
		WorkTimeEnd:        &end,
		DurationMinutes:    &duration,
		AlertOffsetMinutes: &alert,
		WorkingDays:        &days,
	})

	assert.Contains(t, text, "UTC+3")
	assert.Contains(t, text, "09:00-18:30")
	assert.Contains(t, text, "30 мин")
	assert.Contains(t, text, "за 15 минут")
	assert.Contains(t, text, "План на день: выключен")
	assert.Contains(t, text, "Рабочие дни: Пн, Ср")
}

func TestFormatSettings_Empty(t *testing.T) {
	text := FormatSettings(&model.Settings{})

	assert.Contains(t, text, "UTC")
	assert.Contains(t, text, "Рабочие часы: не заданы")
	assert.Contains(t, text, "Рабочие дни: все")
}
