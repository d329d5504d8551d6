package entity

// User is an entry of the directory roster. Doctors carry a DoctorProfile.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar,omitempty"`

	DoctorProfile *DoctorProfile `json:"doctor_profile,omitempty"`
}

// IsDoctor reports whether the user can be booked.
func (u *User) IsDoctor() bool {
	return u != nil && u.Role == RoleDoctor
}

// Clone returns a deep copy so callers never share the roster's memory.
func (u User) Clone() User {
	if u.DoctorProfile != nil {
		profile := *u.DoctorProfile
		profile.AvailableSlots = append([]string(nil), u.DoctorProfile.AvailableSlots...)
		u.DoctorProfile = &profile
	}
	return u
}

// Merge overlays the non-zero fields of patch onto u. The ID is never changed.
func (u User) Merge(patch User) User {
	merged := u.Clone()
	if patch.Name != "" {
		merged.Name = patch.Name
	}
	if patch.Email != "" {
		merged.Email = patch.Email
	}
	if patch.Role != "" {
		merged.Role = patch.Role
	}
	if patch.AvatarURL != "" {
		merged.AvatarURL = patch.AvatarURL
	}
	if patch.DoctorProfile != nil {
		if merged.DoctorProfile == nil {
			merged.DoctorProfile = &DoctorProfile{}
		}
		merged.DoctorProfile.merge(*patch.DoctorProfile)
	}
	return merged
}

// UserFilter narrows a roster listing. Empty fields match everything.
type UserFilter struct {
	Query string
	Role  Role
}
