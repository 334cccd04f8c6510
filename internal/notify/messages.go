package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/meeting_bot/internal/formatting"
)

// MessageText собирает HTML-текст уведомления в часовом поясе получателя
func MessageText(ev Event) string {
	tz := ev.Recipient.Timezone

	var b strings.Builder
	switch ev.Type {
	case EventNewSlotProposed:
		b.WriteString("📩 <b>Новое предложение встречи</b>\n\n")
		if ev.Counterpart != nil {
			fmt.Fprintf(&b, "От: %s\n", displayName(*ev.Counterpart))
		}
		writeSlot(&b, ev.Slot, tz)

	case EventConfirmationChanged:
		if ev.Slot != nil && ev.Slot.Confirmed {
			b.WriteString("✅ <b>Встреча подтверждена</b>\n\n")
		} else {
			b.WriteString("❌ <b>Встреча отменена</b>\n\n")
		}
		if ev.Counterpart != nil {
			fmt.Fprintf(&b, "Участник: %s\n", displayName(*ev.Counterpart))
		}
		writeSlot(&b, ev.Slot, tz)

	case EventSelfBookingConfirmed:
		b.WriteString("📌 <b>Вы записаны</b>\n\n")
		writeSlot(&b, ev.Slot, tz)

	case EventMeetingAlert:
		fmt.Fprintf(&b, "⏰ <b>Встреча через %d %s</b>\n\n", ev.AlertOffset, formatting.PluralizeMinutes(ev.AlertOffset))
		writeSlot(&b, ev.Slot, tz)

	case EventDailyAgenda:
		fmt.Fprintf(&b, "🗓 <b>План на %s</b>\n\n", formatting.FormatDateWithWeekday(ev.Date))
		if len(ev.Agenda) == 0 {
			b.WriteString("Встреч нет")
			break
		}
		fmt.Fprintf(&b, "%d %s:\n", len(ev.Agenda), formatting.PluralizeMeetings(len(ev.Agenda)))
		for _, item := range ev.Agenda {
			fmt.Fprintf(&b, "• %s %s\n",
				formatting.FormatLocalRange(item.StartAt, item.EndAt, tz),
				html.EscapeString(item.Title),
			)
		}

	default:
		fmt.Fprintf(&b, "Уведомление: %s", ev.Type)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeSlot(b *strings.Builder, slot *SlotInfo, tz int) {
	if slot == nil {
		return
	}
	fmt.Fprintf(b, "<b>%s</b>\n", html.EscapeString(slot.Title))
	fmt.Fprintf(b, "🕐 %s (%s)\n", formatting.FormatLocalRange(slot.StartAt, slot.EndAt, tz), formatting.FormatOffset(tz))
	if slot.Description != "" {
		fmt.Fprintf(b, "📝 %s\n", html.EscapeString(slot.Description))
	}
	if slot.MeetingURL != "" {
		fmt.Fprintf(b, "🔗 %s\n", html.EscapeString(slot.MeetingURL))
	}
}

func displayName(r Recipient) string {
	name := html.EscapeString(r.Name)
	if r.Username != "" {
		return fmt.Sprintf("%s (@%s)", name, html.EscapeString(r.Username))
	}
	return name
}
