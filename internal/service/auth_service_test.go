package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db, err := repository.NewDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	userRepo := repository.NewUserRepository(db)
	return NewAuthService(userRepo, "test-secret"), userRepo
}

func TestAuth_RegisterLoginAndResolve(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dev@Example.com", "hunter42", "Dev One")
	require.NoError(t, err)
	require.Equal(t, "dev@example.com", user.Email)
	require.Equal(t, model.RoleTeamMember, user.Role)
	require.NotEqual(t, "hunter42", user.PasswordHash)

	_, err = svc.Register(ctx, "dev@example.com", "other", "Dup")
	require.Error(t, err)

	logged, token, err := svc.Login(ctx, "dev@example.com", "hunter42")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
	require.NotEmpty(t, token)

	resolved, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	_, _, err = svc.Login(ctx, "dev@example.com", "wrong")
	require.Error(t, err)

	_, err = svc.ResolveToken(ctx, "garbage")
	require.Error(t, err)
}

func TestAuth_DeletedUserInvalidatesSession(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "gone@example.com", "hunter42", "Soon Gone")
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "gone@example.com", "hunter42")
	require.NoError(t, err)

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	_, err = svc.ResolveToken(ctx, token)
	require.Error(t, err)
}
