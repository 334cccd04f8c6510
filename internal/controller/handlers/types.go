package handlers

import (
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService         *service.UserService
	settingsService     *service.SettingsService
	shareService        *service.ShareService
	availabilityService *service.AvailabilityService
	bookingService      *service.BookingService
	textBookingService  *service.TextBookingService
	now                 func() time.Time
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	settingsService *service.SettingsService,
	shareService *service.ShareService,
	availabilityService *service.AvailabilityService,
	bookingService *service.BookingService,
	textBookingService *service.TextBookingService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:         userService,
		settingsService:     settingsService,
		shareService:        shareService,
		availabilityService: availabilityService,
		bookingService:      bookingService,
		textBookingService:  textBookingService,
		now:                 func() time.Time { return time.Now().UTC() },
		logger:              logger,
	}
}
