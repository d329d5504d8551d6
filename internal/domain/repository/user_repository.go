package repository

import (
	"context"
	"errors"

	"mediconnect/internal/domain/entity"
)

var ErrDuplicateUserID = errors.New("user id already exists")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmailAndRole(ctx context.Context, email string, role entity.Role) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	// Update merges user into the entry with the same ID. The bool reports
	// whether an entry matched.
	Update(ctx context.Context, user *entity.User) (*entity.User, bool, error)
	// Delete returns whether an entry was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
