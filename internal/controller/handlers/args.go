package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/google/uuid"
)

// ErrBadArguments аргументы команды не удалось разобрать
var ErrBadArguments = errors.New("bad command arguments")

// CommandArgs возвращает аргументы команды без самой команды
func CommandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// ParseDate принимает "2026-10-14" и "14.10.2026"
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{DateLayout, DateLayoutAlt} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", ErrBadArguments, s)
}

// ParseBookArgs разбирает "/book <token> [дата]". Без даты берётся today.
func ParseBookArgs(args []string, today time.Time) (string, time.Time, error) {
	switch len(args) {
	case 1:
		return args[0], today, nil
	case 2:
		date, err := ParseDate(args[1])
		if err != nil {
			return "", time.Time{}, err
		}
		return args[0], date, nil
	default:
		return "", time.Time{}, fmt.Errorf("%w: expected token and optional date", ErrBadArguments)
	}
}

// ParseSlotIDArg разбирает "/cancel <id>"
func ParseSlotIDArg(args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("%w: expected slot id", ErrBadArguments)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return id, nil
}

// ParseClock принимает время как "9.30", "9:30" или "9" и возвращает 9.30.
// Допустимость минут проверяет сервис настроек.
func ParseClock(s string) (float64, error) {
	if hoursRaw, minutesRaw, ok := strings.Cut(s, ":"); ok {
		hours, err := strconv.Atoi(hoursRaw)
		if err != nil || hours < 0 {
			return 0, fmt.Errorf("%w: clock %q", ErrBadArguments, s)
		}
		minutes, err := strconv.Atoi(minutesRaw)
		if err != nil || len(minutesRaw) != 2 || minutes < 0 {
			return 0, fmt.Errorf("%w: clock %q", ErrBadArguments, s)
		}
		return float64(hours*100+minutes) / 100, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: clock %q", ErrBadArguments, s)
	}
	return v, nil
}

// ParseSettingsArgs разбирает "key=value" пары команды /settings:
// tz=3 work=9.00-18.00 duration=30 alert=15 daily=8:30 days=пн,вт,ср
func ParseSettingsArgs(args []string) (model.SettingsPatch, error) {
	var patch model.SettingsPatch
	if len(args) == 0 {
		return patch, fmt.Errorf("%w: nothing to update", ErrBadArguments)
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			return patch, fmt.Errorf("%w: %q is not key=value", ErrBadArguments, arg)
		}

		switch strings.ToLower(key) {
		case SettingTimezone:
			tz, err := strconv.Atoi(strings.TrimPrefix(value, "+"))
			if err != nil {
				return patch, fmt.Errorf("%w: timezone %q", ErrBadArguments, value)
			}
			patch.Timezone = &tz
		case SettingWork:
			startRaw, endRaw, ok := strings.Cut(value, "-")
			if !ok {
				return patch, fmt.Errorf("%w: work hours %q", ErrBadArguments, value)
			}
			start, err := ParseClock(startRaw)
			if err != nil {
				return patch, err
			}
			end, err := ParseClock(endRaw)
			if err != nil {
				return patch, err
			}
			patch.WorkTimeStart = &start
			patch.WorkTimeEnd = &end
		case SettingDuration:
			minutes, err := strconv.Atoi(value)
			if err != nil {
				return patch, fmt.Errorf("%w: duration %q", ErrBadArguments, value)
			}
			patch.DurationMinutes = &minutes
		case SettingAlert:
			minutes, err := strconv.Atoi(value)
			if err != nil {
				return patch, fmt.Errorf("%w: alert %q", ErrBadArguments, value)
			}
			patch.AlertOffsetMinutes = &minutes
		case SettingDaily:
			clock, err := ParseClock(value)
			if err != nil {
				return patch, err
			}
			patch.DailyReminderTime = &clock
		case SettingDays:
			patch.WorkingDays = strings.Split(value, ",")
		default:
			return patch, fmt.Errorf("%w: unknown setting %q", ErrBadArguments, key)
		}
	}

	return patch, nil
}
