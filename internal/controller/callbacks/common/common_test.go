package common

import (
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBookOffer(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	data := EncodeBookOffer("Abc123", date, availability.Slot{Start: 9.30, End: 10.0})

	assert.Equal(t, "book:Abc123:20261014:0930-1000", data)
	assert.LessOrEqual(t, len(EncodeBookOffer("vytxeTZskVKR7C7WgdSP3d", date, availability.Slot{Start: 23.30, End: 24.0})), 64)
}

func TestDecodeBookOffer(t *testing.T) {
	offer, err := DecodeBookOffer("book:Abc123:20261014:2330-2400")
	require.NoError(t, err)

	assert.Equal(t, "Abc123", offer.Token)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), offer.Date)
	assert.Equal(t, availability.Slot{Start: 23.30, End: 24.0}, offer.Slot)
}

func TestDecodeBookOffer_Invalid(t *testing.T) {
	cases := []string{
		"slot:accept:1",
		"book:",
		"book::20261014:0930-1000",
		"book:tok:2026-10-14:0930-1000",
		"book:tok:20261014:0930",
		"book:tok:20261014:0960-1000",
		"book:tok:20261014:0930-2430",
		"book:tok:20261014:9:30-1000",
	}
	for _, data := range cases {
		t.Run(data, func(t *testing.T) {
			_, err := DecodeBookOffer(data)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParseSlotID(t *testing.T) {
	id := uuid.New()

	got, err := ParseSlotID("slot:accept:"+id.String(), "slot:accept:")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseSlotID("slot:accept:nope", "slot:accept:")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseSlotID("slot:reject:"+id.String(), "slot:accept:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestErrorMessage_DistinctPerError(t *testing.T) {
	errs := []error{
		service.ErrUserNotFound,
		service.ErrShareTokenNotFound,
		service.ErrTimeSlotNotFound,
		service.ErrTimeSlotOverlap,
		service.ErrTextParse,
		service.ErrMeetingProvision,
		service.ErrInvalidTimeRange,
		service.ErrInvalidSettings,
		service.ErrForbidden,
		availability.ErrInvalidWorkWindow,
		availability.ErrInvalidTimeValue,
		model.ErrInvalidTransition,
		ErrInvalidFormat,
	}

	seen := make(map[string]error)
	for _, err := range errs {
		msg := ErrorMessage(fmt.Errorf("wrapped: %w", err))
		if prev, ok := seen[msg]; ok {
			t.Fatalf("%v and %v share message %q", prev, err, msg)
		}
		seen[msg] = err
	}

	assert.Equal(t, "❌ Произошла ошибка. Попробуйте позже.", ErrorMessage(fmt.Errorf("boom")))
}

func TestOffersDayRoundTrip(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	token, got, err := DecodeOffersDay(EncodeOffersDay("Abc123", date))
	require.NoError(t, err)
	assert.Equal(t, "Abc123", token)
	assert.Equal(t, date, got)

	_, _, err = DecodeOffersDay("offers:Abc123")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, _, err = DecodeOffersDay("offers::20261014")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestOffersKeyboard(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	offers := []availability.Slot{
		{Start: 9.0, End: 9.30},
		{Start: 9.30, End: 10.0},
		{Start: 10.0, End: 10.30},
		{Start: 10.30, End: 11.0},
	}

	kb := OffersKeyboard("abc", date, offers)

	// два ряда слотов и ряд навигации
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 1)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "09:00-09:30", first.Text)
	offer, err := DecodeBookOffer(first.CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "abc", offer.Token)
	assert.Equal(t, date, offer.Date)
	assert.Equal(t, offers[0], offer.Slot)

	nav := kb.InlineKeyboard[2]
	assert.Equal(t, "offers:abc:20261013", nav[0].CallbackData)
	assert.Equal(t, "offers:abc:20261015", nav[2].CallbackData)
}

func TestOffersKeyboard_Limit(t *testing.T) {
	offers := make([]availability.Slot, 0, 96)
	for m := 0; m < 24*60; m += 15 {
		offers = append(offers, availability.Slot{
			Start: availability.MinutesToDecimal(m),
			End:   availability.MinutesToDecimal(m + 15),
		})
	}

	kb := OffersKeyboard("abc", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), offers)
	total := 0
	for _, row := range kb.InlineKeyboard[:len(kb.InlineKeyboard)-1] {
		total += len(row)
	}
	assert.Equal(t, MaxOfferButtons, total)
}

func TestOffersView_Empty(t *testing.T) {
	text, kb := OffersView("abc", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), 3, nil)

	assert.Contains(t, text, "свободного времени нет")
	require.Len(t, kb.InlineKeyboard, 1)
}
