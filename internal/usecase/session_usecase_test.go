package usecase

import (
	"context"
	"testing"

	"mediconnect/internal/domain/entity"
	"mediconnect/internal/repository"
	"mediconnect/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionUsecase_LoginSurvivesRestart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Nil(t, f.session.Restore(ctx))

	user := mustUser(t, f, "p2")
	require.NoError(t, f.session.Login(ctx, user))
	assert.Equal(t, user, f.session.Current())

	restarted := NewSessionUsecase(f.log, repository.NewSessionRepository(f.store, f.log), service.NewAuditService(f.log, f.auditRepo, clock), 0)
	restored := restarted.Restore(ctx)
	require.NotNil(t, restored)
	assert.Equal(t, *user, *restored)
	assert.Contains(t, f.auditActions(t), entity.AuditActionUserLogin)
}

func TestSessionUsecase_LoginOverwritesPreviousSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.Login(ctx, mustUser(t, f, "p1")))
	require.NoError(t, f.session.Login(ctx, mustUser(t, f, "admin1")))

	restored := f.session.Restore(ctx)
	require.NotNil(t, restored)
	assert.Equal(t, "admin1", restored.ID)
}

func TestSessionUsecase_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.Login(ctx, mustUser(t, f, "p1")))
	require.NoError(t, f.session.Logout(ctx))

	assert.Nil(t, f.session.Current())
	assert.Nil(t, f.session.Restore(ctx))
	assert.Equal(t, entity.AuditActionUserLogout, f.auditActions(t)[0])
}

func TestSessionUsecase_CurrentIsACopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.Login(ctx, mustUser(t, f, "p1")))
	f.session.Current().Name = "changed"

	assert.Equal(t, "Rahul Khanna", f.session.Current().Name)
}

func TestSessionUsecase_LoginHonoursCancellation(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.session.Login(ctx, mustUser(t, f, "p1"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, f.session.Current())
}
