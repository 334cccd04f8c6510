package handlers

// Ключи команды /settings
const (
	SettingTimezone = "tz"
	SettingWork     = "work"
	SettingDuration = "duration"
	SettingAlert    = "alert"
	SettingDaily    = "daily"
	SettingDays     = "days"
)

// Формат даты в командах
const (
	DateLayout    = "2006-01-02"
	DateLayoutAlt = "02.01.2006"
)

