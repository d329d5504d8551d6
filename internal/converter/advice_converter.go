package converter

import (
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
)

func ChatHistoryToEntities(history []dto.ChatMessageRequest) []entity.ChatMessage {
	messages := make([]entity.ChatMessage, len(history))
	for i, m := range history {
		messages[i] = entity.ChatMessage{Role: entity.ChatRole(m.Role), Text: m.Text}
	}
	return messages
}
