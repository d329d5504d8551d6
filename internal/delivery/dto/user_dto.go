package dto

import "github.com/shopspring/decimal"

// UpdateUserRequest is a partial update; empty fields keep their current value.
type UpdateUserRequest struct {
	Name          string                      `json:"name" validate:"omitempty,min=2,max=100"`
	Email         string                      `json:"email" validate:"omitempty,email"`
	Role          string                      `json:"role" validate:"omitempty,oneof=PATIENT DOCTOR ADMIN"`
	Avatar        string                      `json:"avatar" validate:"omitempty,url"`
	DoctorProfile *UpdateDoctorProfileRequest `json:"doctor_profile" validate:"omitempty"`
}

type UpdateDoctorProfileRequest struct {
	Specialization  string           `json:"specialization" validate:"omitempty,max=100"`
	YearsExperience int              `json:"years_experience" validate:"gte=0,lte=80"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
	Rating          float64          `json:"rating" validate:"gte=0,lte=5"`
	Bio             string           `json:"bio" validate:"omitempty,max=1000"`
	Location        string           `json:"location" validate:"omitempty,max=100"`
	AvailableSlots  []string         `json:"available_slots" validate:"omitempty,dive,required"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
