package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
)

type SettingsRepository interface {
	Get(ctx context.Context) (entity.Settings, error)
	Save(ctx context.Context, settings entity.Settings) error
}
