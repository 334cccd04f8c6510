package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
)

// BookOffer префикс кнопки выбора предложенного слота.
// Формат: book:<token>:<YYYYMMDD>:<HHMM>-<HHMM>, время в часовом поясе приглашённого.
const BookOffer = "book:"

// OffersDay префикс кнопки перехода к свободному времени другого дня.
// Формат: offers:<token>:<YYYYMMDD>
const OffersDay = "offers:"

const bookDateLayout = "20060102"

// BookOfferData описывает выбранный приглашённым слот
type BookOfferData struct {
	Token string
	Date  time.Time
	Slot  availability.Slot
}

// EncodeBookOffer собирает callback data для кнопки слота
func EncodeBookOffer(token string, date time.Time, slot availability.Slot) string {
	return fmt.Sprintf("%s%s:%s:%s-%s",
		BookOffer, token, date.Format(bookDateLayout), packClock(slot.Start), packClock(slot.End))
}

// DecodeBookOffer разбирает callback data кнопки слота
func DecodeBookOffer(data string) (BookOfferData, error) {
	raw, ok := strings.CutPrefix(data, BookOffer)
	if !ok {
		return BookOfferData{}, ErrInvalidFormat
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] == "" {
		return BookOfferData{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	date, err := time.Parse(bookDateLayout, parts[1])
	if err != nil {
		return BookOfferData{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	startRaw, endRaw, ok := strings.Cut(parts[2], "-")
	if !ok {
		return BookOfferData{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	start, err := unpackClock(startRaw)
	if err != nil {
		return BookOfferData{}, err
	}
	end, err := unpackClock(endRaw)
	if err != nil {
		return BookOfferData{}, err
	}

	return BookOfferData{
		Token: parts[0],
		Date:  date,
		Slot:  availability.Slot{Start: start, End: end},
	}, nil
}

// EncodeOffersDay собирает callback data для перехода к дню
func EncodeOffersDay(token string, date time.Time) string {
	return OffersDay + token + ":" + date.Format(bookDateLayout)
}

// DecodeOffersDay разбирает callback data перехода к дню
func DecodeOffersDay(data string) (string, time.Time, error) {
	raw, ok := strings.CutPrefix(data, OffersDay)
	if !ok {
		return "", time.Time{}, ErrInvalidFormat
	}
	token, dateRaw, ok := strings.Cut(raw, ":")
	if !ok || token == "" {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	date, err := time.Parse(bookDateLayout, dateRaw)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return token, date, nil
}

// packClock 9.30 -> "0930"; конец дня 24.00 -> "2400"
func packClock(decimal float64) string {
	m, err := availability.DecimalToMinutes(decimal)
	if err != nil {
		return "0000"
	}
	return fmt.Sprintf("%02d%02d", m/60, m%60)
}

func unpackClock(s string) (float64, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidFormat, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidFormat, s)
	}
	h, m := n/100, n%100
	if m >= 60 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidFormat, s)
	}
	return availability.MinutesToDecimal(h*60 + m), nil
}
