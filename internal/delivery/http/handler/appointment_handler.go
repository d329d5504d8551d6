package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/delivery/http/middleware"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/response"
	"mediconnect/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// GetMyAppointments lists the patient's appointments split into upcoming and past
// @Summary Patient appointment history
// @Tags Patient
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())

	upcoming, past, err := h.appointmentUsecase.History(r.Context(), user.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", dto.AppointmentHistoryResponse{
		Upcoming: converter.AppointmentsToResponses(upcoming),
		Past:     converter.AppointmentsToResponses(past),
		Total:    len(upcoming) + len(past),
	})
}

// BookAppointment creates a pending appointment for the signed-in patient
// @Summary Book appointment
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/appointments [post]
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, _ := middleware.GetUserFromContext(r.Context())
	appointment, err := h.appointmentUsecase.Book(r.Context(), converter.BookRequestToDraft(user, &req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case errors.Is(err, usecase.ErrSlotUnavailable):
			response.BadRequest(w, "The doctor does not offer this time slot")
		case errors.Is(err, repository.ErrSlotTaken):
			response.Conflict(w, "This slot is already booked")
		case errors.Is(err, repository.ErrVersionConflict):
			response.Conflict(w, "Appointments changed concurrently, please retry")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", converter.AppointmentToResponse(appointment))
}

// CancelAppointment cancels one of the patient's upcoming appointments
// @Summary Cancel appointment
// @Tags Patient
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())

	appointment, err := h.appointmentUsecase.CancelAs(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		h.writeStatusError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", converter.AppointmentToResponse(appointment))
}

// GetAppointments lists the appointments visible to the signed-in user's role
// @Summary List appointments
// @Tags Doctor, Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/appointments [get]
// @Router /admin/appointments [get]
func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())

	appointments, err := h.appointmentUsecase.ListFor(r.Context(), user.ID, user.Role)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	})
}

// UpdateStatus moves an appointment along its lifecycle
// @Summary Update appointment status
// @Tags Doctor, Admin
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/appointments/{id}/status [post]
// @Router /admin/appointments/{id}/status [post]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, _ := middleware.GetUserFromContext(r.Context())
	appointment, err := h.appointmentUsecase.SetStatusAs(r.Context(), user, mux.Vars(r)["id"], entity.AppointmentStatus(req.Status))
	if err != nil {
		h.writeStatusError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", converter.AppointmentToResponse(appointment))
}

// GetDoctorStats returns the doctor dashboard figures
// @Summary Doctor dashboard stats
// @Tags Doctor
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/stats [get]
func (h *AppointmentHandler) GetDoctorStats(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())

	stats, err := h.appointmentUsecase.DoctorStats(r.Context(), user.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

func (h *AppointmentHandler) writeStatusError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrNotAllowed):
		response.Forbidden(w, "You cannot change this appointment")
	case errors.Is(err, usecase.ErrInvalidStatus):
		response.BadRequest(w, "Invalid appointment status")
	case errors.Is(err, entity.ErrInvalidTransition):
		response.Conflict(w, "This status change is not allowed")
	case errors.Is(err, repository.ErrVersionConflict):
		response.Conflict(w, "Appointments changed concurrently, please retry")
	default:
		response.InternalServerError(w, "Failed to update appointment")
	}
}
