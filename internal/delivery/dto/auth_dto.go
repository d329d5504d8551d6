package dto

import "github.com/shopspring/decimal"

// Request DTOs

// LoginRequest carries the demo credentials. The password is accepted but
// never checked.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty"`
	Role     string `json:"role" validate:"required,oneof=PATIENT DOCTOR ADMIN"`
}

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=PATIENT DOCTOR"`
}

// Response DTOs

type UserResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Role          string                 `json:"role"`
	Avatar        string                 `json:"avatar,omitempty"`
	DoctorProfile *DoctorProfileResponse `json:"doctor_profile,omitempty"`
}

type DoctorProfileResponse struct {
	Specialization  string          `json:"specialization"`
	YearsExperience int             `json:"years_experience"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Rating          float64         `json:"rating"`
	Bio             string          `json:"bio,omitempty"`
	Location        string          `json:"location,omitempty"`
	AvailableSlots  []string        `json:"available_slots"`
}
