package converter

import (
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
)

func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		PatientName: a.PatientName,
		DoctorID:    a.DoctorID,
		DoctorName:  a.DoctorName,
		Date:        a.Date,
		Time:        a.Time,
		Status:      string(a.Status),
		Notes:       a.Notes,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// BookRequestToDraft fills the patient side from the signed-in user.
func BookRequestToDraft(patient *entity.User, req *dto.BookAppointmentRequest) entity.AppointmentDraft {
	return entity.AppointmentDraft{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	}
}
