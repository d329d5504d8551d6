package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
)

type SessionRepository interface {
	// Load returns nil, nil when no usable session is stored.
	Load(ctx context.Context) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	Clear(ctx context.Context) error
}
