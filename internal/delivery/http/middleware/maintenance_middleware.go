package middleware

import (
	"net/http"

	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/pkg/response"

	"github.com/sirupsen/logrus"
)

// MaintenanceMiddleware turns non-admin traffic away while maintenance mode is on.
// Routes that must stay reachable are mounted outside it.
type MaintenanceMiddleware struct {
	settingsRepo repository.SettingsRepository
	log          *logrus.Logger
}

func NewMaintenanceMiddleware(settingsRepo repository.SettingsRepository, log *logrus.Logger) *MaintenanceMiddleware {
	return &MaintenanceMiddleware{
		settingsRepo: settingsRepo,
		log:          log,
	}
}

func (m *MaintenanceMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings, err := m.settingsRepo.Get(r.Context())
		if err != nil {
			m.log.Warnf("Failed to read settings: %+v", err)
			next.ServeHTTP(w, r)
			return
		}

		if settings.MaintenanceMode {
			if user, ok := GetUserFromContext(r.Context()); !ok || user.Role != entity.RoleAdmin {
				response.ServiceUnavailable(w, settings.SystemName+" is under maintenance")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
