package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrShareTokenNotFound = errors.New("share token not found")
	ErrTimeSlotNotFound   = errors.New("time slot not found")
	ErrTimeSlotOverlap    = errors.New("time slot overlaps an existing meeting")
	ErrTextParse          = errors.New("failed to parse slot from text")
	ErrMeetingProvision   = errors.New("failed to provision meeting room")
	ErrInvalidTimeRange   = errors.New("meeting end must be after start")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrForbidden          = errors.New("action is not allowed for this user")
)
