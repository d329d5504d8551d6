package handler

import (
	"net/http"

	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/delivery/http/middleware"
	"mediconnect/internal/navigation"
	"mediconnect/pkg/response"
)

type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Navigate resolves a view path for the current session
// @Summary Resolve a view path
// @Tags Navigation
// @Produce json
// @Param path query string true "View path"
// @Success 200 {object} response.Response
// @Router /navigate [get]
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUserFromContext(r.Context())

	decision := navigation.Resolve(user, r.URL.Query().Get("path"))

	response.Success(w, http.StatusOK, "Path resolved", dto.NavigationResponse{
		Path:     decision.Path,
		Redirect: decision.Redirect,
	})
}
