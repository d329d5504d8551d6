package entity

// Settings are the platform-wide preferences edited from the admin portal.
type Settings struct {
	SystemName         string `json:"system_name"`
	ContactEmail       string `json:"contact_email"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	AllowRegistration  bool   `json:"allow_registration"`
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
}

func DefaultSettings() Settings {
	return Settings{
		SystemName:         "MediConnect",
		ContactEmail:       "admin@mediconnect.com",
		AllowRegistration:  true,
		EmailNotifications: true,
	}
}
