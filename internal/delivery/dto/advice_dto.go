package dto

type ChatMessageRequest struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type AdviceRequest struct {
	History []ChatMessageRequest `json:"history" validate:"omitempty,max=50,dive"`
	Message string               `json:"message" validate:"required,max=2000"`
}

type AdviceResponse struct {
	Reply string `json:"reply"`
}
