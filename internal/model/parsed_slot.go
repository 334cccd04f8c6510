package model

// ParsedSlot результат разбора свободного текста; любое поле может отсутствовать
type ParsedSlot struct {
	Title           *string `json:"title"`
	StartTime       *string `json:"meet_start_at"` // "HH:MM"
	EndTime         *string `json:"meet_end_at"`   // "HH:MM"
	Description     *string `json:"description"`
	Date            *string `json:"date"`    // "YYYY-MM-DD"
	Weekday         *string `json:"weekday"` // "пн".."вс"
	IsToday         *bool   `json:"is_today"`
	IsTomorrow      *bool   `json:"is_tomorrow"`
	IsAfterTomorrow *bool   `json:"is_after_tomorrow"`
}
