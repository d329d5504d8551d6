package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
	"mediconnect/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

// SessionKey is the BlobStore key of the persisted session record.
const SessionKey = "user"

type sessionRepository struct {
	doc *storage.Document[*entity.User]
}

func NewSessionRepository(store domainRepo.BlobStore, log *logrus.Logger) domainRepo.SessionRepository {
	return &sessionRepository{
		doc: storage.NewDocument(store, SessionKey, func() *entity.User { return nil }, log),
	}
}

func (r *sessionRepository) Load(ctx context.Context) (*entity.User, error) {
	user, _, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" || !user.Role.Valid() {
		return nil, nil
	}
	return user, nil
}

// Save overwrites whatever session was stored before.
func (r *sessionRepository) Save(ctx context.Context, user *entity.User) error {
	_, err := r.doc.Update(ctx, func(*entity.User) (*entity.User, error) {
		return user, nil
	})
	return err
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.doc.Clear(ctx)
}
