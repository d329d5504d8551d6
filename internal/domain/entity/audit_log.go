package entity

import "time"

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Common audit actions
const (
	AuditActionUserLogin           = "user.login"
	AuditActionUserLogout          = "user.logout"
	AuditActionUserRegister        = "user.register"
	AuditActionUserUpdate          = "user.update"
	AuditActionUserDelete          = "user.delete"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentConfirm  = "appointment.confirm"
	AuditActionAppointmentComplete = "appointment.complete"
	AuditActionAppointmentCancel   = "appointment.cancel"
	AuditActionSettingsUpdate      = "settings.update"
)

// AuditActionForStatus maps the status an appointment moved to onto its audit action.
func AuditActionForStatus(status AppointmentStatus) string {
	switch status {
	case AppointmentStatusConfirmed:
		return AuditActionAppointmentConfirm
	case AppointmentStatusCompleted:
		return AuditActionAppointmentComplete
	case AppointmentStatusCancelled:
		return AuditActionAppointmentCancel
	default:
		return AuditActionAppointmentCreate
	}
}
