package dto

import "github.com/shopspring/decimal"

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentHistoryResponse splits a patient's appointments for the history view.
type AppointmentHistoryResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming"`
	Past     []AppointmentResponse `json:"past"`
	Total    int                   `json:"total"`
}

type DoctorStatsResponse struct {
	TotalAppointments int             `json:"total_appointments"`
	TotalPatients     int             `json:"total_patients"`
	AppointmentsToday int             `json:"appointments_today"`
	PendingRequests   int             `json:"pending_requests"`
	Earnings          decimal.Decimal `json:"earnings"`
}
