package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
)

// AdviceGateway is the external text-completion service behind the assistant.
type AdviceGateway interface {
	GenerateAdvice(ctx context.Context, history []entity.ChatMessage, message string) (string, error)
}
