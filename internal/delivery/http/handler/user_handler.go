package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/delivery/http/middleware"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/response"
	"mediconnect/pkg/validator"

	"github.com/gorilla/mux"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type UserHandler struct {
	directoryUsecase usecase.DirectoryUsecase
	validator        *validator.CustomValidator
}

func NewUserHandler(directoryUsecase usecase.DirectoryUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
	}
}

// GetDoctors lists bookable doctors
// @Summary Find doctors
// @Tags Patient
// @Produce json
// @Param q query string false "Name or specialization"
// @Param specialization query string false "Exact specialization"
// @Param location query string false "Location substring"
// @Success 200 {object} response.Response
// @Router /patient/doctors [get]
func (h *UserHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doctors, err := h.directoryUsecase.ListDoctors(r.Context(), entity.DoctorFilter{
		Query:          q.Get("q"),
		Specialization: q.Get("specialization"),
		Location:       q.Get("location"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", dto.UserListResponse{
		Users: converter.UsersToResponses(doctors),
		Total: len(doctors),
	})
}

// GetAllUsers lists the roster for user management
// @Summary List users
// @Tags Admin
// @Produce json
// @Param q query string false "Name or email"
// @Param role query string false "PATIENT, DOCTOR or ADMIN"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := entity.UserFilter{Query: q.Get("q")}
	if raw := q.Get("role"); raw != "" {
		role, err := entity.ParseRole(raw)
		if err != nil {
			response.BadRequest(w, "Unknown role")
			return
		}
		filter.Role = role
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	users, err := h.directoryUsecase.Search(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	total := len(users)
	start, end := pageWindow(page, limit, total)

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      int64(total),
		TotalPages: (total + limit - 1) / limit,
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", converter.UsersToResponses(users[start:end]), meta)
}

// pageWindow returns the slice bounds of a 1-based page. Pages past the end
// are empty.
func pageWindow(page, limit, total int) (int, int) {
	if page < 1 || limit < 1 || page-1 > total/limit {
		return total, total
	}
	start := min((page-1)*limit, total)
	return start, min(start+limit, total)
}

// UpdateUser applies a partial update to a roster entry
// @Summary Update user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if _, err := h.directoryUsecase.Get(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to update user")
		return
	}

	actor, _ := middleware.GetUserFromContext(r.Context())
	updated, err := h.directoryUsecase.Update(r.Context(), actor.ID, converter.UpdateRequestToUser(id, &req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			response.Conflict(w, "Email already registered for this role")
		case errors.Is(err, entity.ErrUnknownRole):
			response.BadRequest(w, "Unknown role")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", converter.UserToResponse(updated))
}

// DeleteUser removes a roster entry; removing an unknown id succeeds
// @Summary Delete user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	actor, _ := middleware.GetUserFromContext(r.Context())
	if actor.ID == id {
		response.BadRequest(w, "You cannot delete your own account")
		return
	}

	if err := h.directoryUsecase.Remove(r.Context(), actor.ID, id); err != nil {
		response.InternalServerError(w, "Failed to delete user")
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}
