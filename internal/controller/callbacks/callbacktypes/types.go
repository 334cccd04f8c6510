package callbacktypes

import (
	"github.com/Freeeeeet/meeting_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService         *service.UserService
	SettingsService     *service.SettingsService
	AvailabilityService *service.AvailabilityService
	BookingService      *service.BookingService
	Logger              *zap.Logger
}
