package service

import (
	"context"
	"testing"
	"time"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/auth"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootAccount = "owner"

func newAdminServices(t *testing.T) (*AdminService, *AuthService, *repository.AdminRepository) {
	t.Helper()
	repo := repository.NewAdminRepository(testutil.NewDB(t))
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewAdminService(repo, rootAccount, logger.Nop()),
		NewAuthService(repo, tokens, rootAccount, logger.Nop()),
		repo
}

func TestAdminLifecycle(t *testing.T) {
	admins, _, repo := newAdminServices(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Admin{Account: rootAccount, Password: "legacy"}))
	require.NoError(t, admins.Add(ctx, "alice", "pw"))

	err := admins.Add(ctx, "alice", "pw2")
	require.True(t, apperrors.IsDuplicate(err))
	appErr, _ := apperrors.As(err)
	assert.Equal(t, "Admin already exists", appErr.Message)

	assert.True(t, apperrors.IsValidation(admins.Add(ctx, "", "pw")))
	assert.True(t, apperrors.IsValidation(admins.Add(ctx, "bob", "")))

	list, err := admins.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Account)

	stored, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, auth.IsHash(stored.Password))

	require.NoError(t, admins.ChangePassword(ctx, "alice", "new"))
	assert.True(t, apperrors.IsNotFound(admins.ChangePassword(ctx, "nobody", "x")))
	assert.True(t, apperrors.IsValidation(admins.ChangePassword(ctx, "alice", "")))

	assert.True(t, apperrors.IsNotFound(admins.ChangePassword(ctx, rootAccount, "x")))
	assert.True(t, apperrors.IsNotFound(admins.Delete(ctx, rootAccount)))

	require.NoError(t, admins.Delete(ctx, "alice"))
	assert.True(t, apperrors.IsNotFound(admins.Delete(ctx, "alice")))
}

func TestEnsureRoot(t *testing.T) {
	admins, authSvc, repo := newAdminServices(t)
	ctx := context.Background()

	require.NoError(t, admins.EnsureRoot(ctx, ""))
	_, err := repo.Get(ctx, rootAccount)
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, admins.EnsureRoot(ctx, "first"))
	require.NoError(t, admins.EnsureRoot(ctx, "second"))

	_, err = authSvc.Login(ctx, rootAccount, "first")
	assert.NoError(t, err)
	_, err = authSvc.Login(ctx, rootAccount, "second")
	assert.Equal(t, 401, apperrors.HTTPStatus(err))
}

func TestLogin(t *testing.T) {
	admins, authSvc, repo := newAdminServices(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Admin{Account: rootAccount, Password: "plain-root"}))
	require.NoError(t, admins.Add(ctx, "alice", "alice-pw"))

	t.Run("root legacy plaintext", func(t *testing.T) {
		s, err := authSvc.Login(ctx, rootAccount, "plain-root")
		require.NoError(t, err)
		assert.Equal(t, rootAccount, s.Account)

		account, err := authSvc.Verify(ctx, s.Token)
		require.NoError(t, err)
		assert.Equal(t, rootAccount, account)
	})

	t.Run("hashed password", func(t *testing.T) {
		s, err := authSvc.Login(ctx, "alice", "alice-pw")
		require.NoError(t, err)
		assert.NotEmpty(t, s.Token)
		assert.True(t, s.ExpiresAt.After(time.Now()))
	})

	t.Run("plaintext is not accepted for other accounts", func(t *testing.T) {
		stored, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		_, err = authSvc.Login(ctx, "alice", stored.Password)
		assert.Equal(t, 401, apperrors.HTTPStatus(err))
	})

	for name, creds := range map[string][2]string{
		"wrong password":  {"alice", "nope"},
		"unknown account": {"mallory", "x"},
		"root wrong":      {rootAccount, "nope"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := authSvc.Login(ctx, creds[0], creds[1])
			require.Error(t, err)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, 401, appErr.HTTPCode)
			assert.Equal(t, "Invalid account or password", appErr.Message)
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		_, err := authSvc.Login(ctx, "", "x")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := authSvc.Verify(ctx, "garbage")
		assert.Equal(t, 401, apperrors.HTTPStatus(err))
	})
}

func TestVerifyRejectsRemovedAccount(t *testing.T) {
	admins, authSvc, _ := newAdminServices(t)
	ctx := context.Background()

	require.NoError(t, admins.Add(ctx, "bob", "bob-pw"))
	s, err := authSvc.Login(ctx, "bob", "bob-pw")
	require.NoError(t, err)

	account, err := authSvc.Verify(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", account)

	require.NoError(t, admins.Delete(ctx, "bob"))

	_, err = authSvc.Verify(ctx, s.Token)
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.HTTPStatus(err))
}
