package entity

import "github.com/shopspring/decimal"

// DoctorProfile holds the doctor-specific part of a User.
// AvailableSlots lists the times a patient may book. An empty list accepts any time.
type DoctorProfile struct {
	Specialization  string          `json:"specialization"`
	YearsExperience int             `json:"years_experience"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Rating          float64         `json:"rating"`
	Bio             string          `json:"bio,omitempty"`
	Location        string          `json:"location,omitempty"`
	AvailableSlots  []string        `json:"available_slots"`
}

func (p *DoctorProfile) merge(patch DoctorProfile) {
	if patch.Specialization != "" {
		p.Specialization = patch.Specialization
	}
	if patch.YearsExperience != 0 {
		p.YearsExperience = patch.YearsExperience
	}
	if !patch.ConsultationFee.IsZero() {
		p.ConsultationFee = patch.ConsultationFee
	}
	if patch.Rating != 0 {
		p.Rating = patch.Rating
	}
	if patch.Bio != "" {
		p.Bio = patch.Bio
	}
	if patch.Location != "" {
		p.Location = patch.Location
	}
	if len(patch.AvailableSlots) > 0 {
		p.AvailableSlots = append([]string(nil), patch.AvailableSlots...)
	}
}

// HasSlot reports whether label is one of the advertised slots.
func (p *DoctorProfile) HasSlot(label string) bool {
	for _, s := range p.AvailableSlots {
		if s == label {
			return true
		}
	}
	return false
}

// DoctorFilter is used by the find-doctor listing.
type DoctorFilter struct {
	Query          string // matches name or specialization, case-insensitive
	Specialization string // exact match
	Location       string // substring, case-insensitive
}
