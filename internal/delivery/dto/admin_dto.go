package dto

type AdminStatsResponse struct {
	TotalUsers           int            `json:"total_users"`
	UsersByRole          map[string]int `json:"users_by_role"`
	TotalAppointments    int            `json:"total_appointments"`
	AppointmentsByStatus map[string]int `json:"appointments_by_status"`
	UpcomingAppointments int            `json:"upcoming_appointments"`
}

type SettingsRequest struct {
	SystemName         string `json:"system_name" validate:"required,max=100"`
	ContactEmail       string `json:"contact_email" validate:"required,email"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	AllowRegistration  bool   `json:"allow_registration"`
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
}

type SettingsResponse struct {
	SystemName         string `json:"system_name"`
	ContactEmail       string `json:"contact_email"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	AllowRegistration  bool   `json:"allow_registration"`
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
}

type NavigationResponse struct {
	Path     string `json:"path"`
	Redirect bool   `json:"redirect"`
}
