package converter

import (
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
)

func SettingsToResponse(s entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		SystemName:         s.SystemName,
		ContactEmail:       s.ContactEmail,
		MaintenanceMode:    s.MaintenanceMode,
		AllowRegistration:  s.AllowRegistration,
		EmailNotifications: s.EmailNotifications,
		SMSNotifications:   s.SMSNotifications,
	}
}

func SettingsRequestToEntity(req *dto.SettingsRequest) entity.Settings {
	return entity.Settings{
		SystemName:         req.SystemName,
		ContactEmail:       req.ContactEmail,
		MaintenanceMode:    req.MaintenanceMode,
		AllowRegistration:  req.AllowRegistration,
		EmailNotifications: req.EmailNotifications,
		SMSNotifications:   req.SMSNotifications,
	}
}
