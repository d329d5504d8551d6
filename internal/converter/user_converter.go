package converter

import (
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Includes DoctorProfile if the user has one
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
		Avatar: user.AvatarURL,
	}

	if user.DoctorProfile != nil {
		slots := user.DoctorProfile.AvailableSlots
		if slots == nil {
			slots = []string{}
		}
		response.DoctorProfile = &dto.DoctorProfileResponse{
			Specialization:  user.DoctorProfile.Specialization,
			YearsExperience: user.DoctorProfile.YearsExperience,
			ConsultationFee: user.DoctorProfile.ConsultationFee,
			Rating:          user.DoctorProfile.Rating,
			Bio:             user.DoctorProfile.Bio,
			Location:        user.DoctorProfile.Location,
			AvailableSlots:  slots,
		}
	}

	return response
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

// UpdateRequestToUser builds the partial User applied by a directory update.
// The role is expected to be validated already.
func UpdateRequestToUser(id string, req *dto.UpdateUserRequest) *entity.User {
	user := &entity.User{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Role:      entity.Role(req.Role),
		AvatarURL: req.Avatar,
	}

	if p := req.DoctorProfile; p != nil {
		profile := &entity.DoctorProfile{
			Specialization:  p.Specialization,
			YearsExperience: p.YearsExperience,
			Rating:          p.Rating,
			Bio:             p.Bio,
			Location:        p.Location,
			AvailableSlots:  p.AvailableSlots,
		}
		if p.ConsultationFee != nil {
			profile.ConsultationFee = *p.ConsultationFee
		}
		user.DoctorProfile = profile
	}

	return user
}
