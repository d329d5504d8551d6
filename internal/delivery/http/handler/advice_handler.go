package handler

import (
	"encoding/json"
	"net/http"

	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/usecase"
	"mediconnect/pkg/response"
	"mediconnect/pkg/validator"
)

type AdviceHandler struct {
	adviceUsecase usecase.AdviceUsecase
	validator     *validator.CustomValidator
}

func NewAdviceHandler(adviceUsecase usecase.AdviceUsecase, validator *validator.CustomValidator) *AdviceHandler {
	return &AdviceHandler{
		adviceUsecase: adviceUsecase,
		validator:     validator,
	}
}

// Ask forwards a question to the health assistant. Gateway failures still
// answer 200 with an apology text.
// @Summary Ask the health assistant
// @Tags Advice
// @Accept json
// @Produce json
// @Param request body dto.AdviceRequest true "Advice Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /advice [post]
func (h *AdviceHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req dto.AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reply := h.adviceUsecase.Ask(r.Context(), converter.ChatHistoryToEntities(req.History), req.Message)

	response.Success(w, http.StatusOK, "Advice generated", dto.AdviceResponse{Reply: reply})
}
