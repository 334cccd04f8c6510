package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int
		wantErr bool
	}{
		{name: "whole hour", in: 9.0, want: 540},
		{name: "half past", in: 9.30, want: 570},
		{name: "last minute", in: 23.59, want: 1439},
		{name: "midnight", in: 0, want: 0},
		{name: "end of day", in: 24.0, want: 1440},
		{name: "75 clock minutes", in: 9.75, wantErr: true},
		{name: "60 clock minutes", in: 9.60, wantErr: true},
		{name: "negative", in: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecimalToMinutes(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			decimal := MinutesToDecimal(h*60 + m)
			minutes, err := DecimalToMinutes(decimal)
			require.NoError(t, err)
			assert.Equal(t, decimal, MinutesToDecimal(minutes), "value %v", decimal)
		}
	}
}

func TestMinutesToDecimal(t *testing.T) {
	assert.Equal(t, 9.30, MinutesToDecimal(570))
	assert.Equal(t, 6.30, MinutesToDecimal(390))
	assert.Equal(t, 10.0, MinutesToDecimal(600))
	assert.Equal(t, 0.05, MinutesToDecimal(5))
}

func TestUTCNaiveRoundTrip(t *testing.T) {
	base := time.Date(2025, time.March, 30, 23, 45, 0, 0, time.UTC)
	for offset := -12; offset <= 14; offset++ {
		utc := ToUTCNaive(base, offset)
		assert.True(t, FromUTCNaive(utc, offset).Equal(base), "offset %d", offset)
	}

	assert.Equal(t, time.Date(2025, time.March, 30, 20, 45, 0, 0, time.UTC), ToUTCNaive(base, 3))
	assert.Equal(t, time.Date(2025, time.March, 31, 2, 45, 0, 0, time.UTC), FromUTCNaive(base, 3))
}

func TestDecimalOfTimeOfDay(t *testing.T) {
	dt := time.Date(2025, time.May, 5, 14, 5, 59, 0, time.UTC)
	assert.Equal(t, 14.05, DecimalOfTimeOfDay(dt))
}

func TestMinutesSinceDayStart(t *testing.T) {
	day := time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 90, MinutesSinceDayStart(day, day.Add(90*time.Minute)))
	assert.Equal(t, 1500, MinutesSinceDayStart(day, day.Add(25*time.Hour)))
	assert.Equal(t, day, DayStart(day.Add(13*time.Hour+7*time.Minute)))
}
