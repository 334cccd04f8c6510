package formatting

// PluralizeMeetings возвращает правильное склонение слова "встреча"
func PluralizeMeetings(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "встреча"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "встречи"
	}
	return "встреч"
}

// PluralizeMinutes возвращает правильное склонение слова "минута" в винительном падеже
func PluralizeMinutes(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "минуту"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "минуты"
	}
	return "минут"
}
