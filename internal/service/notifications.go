package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/google/uuid"
)

func recipientOf(user *model.User, settings *model.Settings) notify.Recipient {
	return notify.Recipient{
		UserID:     user.ID,
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Username:   user.Username,
		Timezone:   settings.Offset(),
	}
}

// loadRecipient собирает данные получателя; nil если пользователя нет
func loadRecipient(ctx context.Context, repos Repositories, userID uuid.UUID) (*notify.Recipient, error) {
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	settings, err := repos.Settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	r := recipientOf(user, settings)
	return &r, nil
}

func slotInfo(slot *model.TimeSlot) notify.SlotInfo {
	info := notify.SlotInfo{
		ID:        slot.ID,
		Title:     slot.Title,
		StartAt:   slot.MeetStartAt,
		EndAt:     slot.MeetEndAt,
		Confirmed: slot.Status == model.SlotStatusConfirmed,
		Cancelled: slot.Status == model.SlotStatusCancelled,
	}
	if slot.Description != nil {
		info.Description = *slot.Description
	}
	if slot.MeetingURL != nil {
		info.MeetingURL = *slot.MeetingURL
	}
	return info
}
