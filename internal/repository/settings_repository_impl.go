package repository

import (
	"context"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"
	"mediconnect/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

const SettingsKey = "settings"

type settingsRepository struct {
	doc *storage.Document[entity.Settings]
}

func NewSettingsRepository(store domainRepo.BlobStore, log *logrus.Logger) domainRepo.SettingsRepository {
	return &settingsRepository{
		doc: storage.NewDocument(store, SettingsKey, entity.DefaultSettings, log),
	}
}

func (r *settingsRepository) Get(ctx context.Context) (entity.Settings, error) {
	settings, _, err := r.doc.Load(ctx)
	return settings, err
}

func (r *settingsRepository) Save(ctx context.Context, settings entity.Settings) error {
	_, err := r.doc.Update(ctx, func(entity.Settings) (entity.Settings, error) {
		return settings, nil
	})
	return err
}
