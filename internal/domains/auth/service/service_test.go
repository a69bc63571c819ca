package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"velvet/config"
	"velvet/infras/jwt"
	"velvet/infras/otel/mocks"
	accountMocks "velvet/internal/domains/account/mocks"
	accountModel "velvet/internal/domains/account/model"
	accountDto "velvet/internal/domains/account/model/dto"
	"velvet/internal/domains/auth/model/dto"
	"velvet/internal/domains/auth/service"
	"velvet/shared/constant"
	"velvet/shared/password"
)

type fixture struct {
	accountRepo    *accountMocks.MockAccount
	accountService *accountMocks.MockAccountService
	jwtService     jwt.JWT
	svc            service.Auth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	f := &fixture{
		accountRepo:    accountMocks.NewMockAccount(ctrl),
		accountService: accountMocks.NewMockAccountService(ctrl),
		jwtService:     jwt.New(cfg),
	}

	f.svc = service.New(f.accountRepo, f.accountService, cfg, mocks.NewOtel(), f.jwtService)

	return f
}

func activeAccount(t *testing.T, plainPassword string) accountModel.Account {
	t.Helper()

	hashed, err := password.Hash(plainPassword)
	require.NoError(t, err)

	return accountModel.Account{
		ID:       "account-1",
		Email:    "dana@example.com",
		Password: hashed,
		Role:     constant.RoleCustomer,
		Active:   true,
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	req := dto.RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct horse battery",
		Phone:    "+628111234567",
	}

	f.accountService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, accountReq accountDto.CreateAccountRequest) (accountDto.AccountResponse, error) {
			assert.Equal(t, constant.RoleCustomer, accountReq.Role)
			assert.Equal(t, "dana@example.com", accountReq.Email)
			assert.Equal(t, "+628111234567", accountReq.Phone)

			return accountDto.AccountResponse{ID: "account-1"}, nil
		})

	require.NoError(t, f.svc.Register(context.Background(), req))
}

func TestLogin(t *testing.T) {
	req := dto.LoginRequest{Email: "dana@example.com", Password: "correct horse battery"}

	t.Run("issues a role-bearing token pair and stamps last login", func(t *testing.T) {
		f := newFixture(t)

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(t, req.Password), nil)
		f.accountRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, "last_login")

				return nil
			})

		res, err := f.svc.Login(context.Background(), req)
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, constant.RoleCustomer, res.Role)

		claims, err := f.jwtService.ValidateToken(res.AccessToken, jwt.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "account-1", claims.UserID)
		assert.Equal(t, constant.RoleCustomer, claims.Role)
	})

	t.Run("unknown email fails without revealing which half was wrong", func(t *testing.T) {
		f := newFixture(t)

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accountModel.Account{}, nil)

		_, err := f.svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("wrong password fails the same way", func(t *testing.T) {
		f := newFixture(t)

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(t, "something else"), nil)

		_, err := f.svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		f := newFixture(t)

		account := activeAccount(t, req.Password)
		account.Active = false

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)

		_, err := f.svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("a valid refresh token yields a fresh pair", func(t *testing.T) {
		f := newFixture(t)

		pair, err := f.jwtService.GenerateTokenPair("account-1", "dana@example.com", constant.RoleCustomer)
		require.NoError(t, err)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
	})

	t.Run("garbage is unauthorized", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
	})

	t.Run("an access token cannot be used to refresh", func(t *testing.T) {
		f := newFixture(t)

		pair, err := f.jwtService.GenerateTokenPair("account-1", "dana@example.com", constant.RoleCustomer)
		require.NoError(t, err)

		_, err = f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: pair.AccessToken})
		require.Error(t, err)
	})
}

func TestChangePassword(t *testing.T) {
	req := dto.ChangePasswordRequest{
		CurrentPassword: "correct horse battery",
		NewPassword:     "staple gun overdrive",
	}

	t.Run("rehashes and stores the new password", func(t *testing.T) {
		f := newFixture(t)

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(t, req.CurrentPassword), nil)
		f.accountRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hashed, ok := fields[accountModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify(req.NewPassword, hashed))

				return nil
			})

		require.NoError(t, f.svc.ChangePassword(context.Background(), req, "account-1"))
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeAccount(t, "something else"), nil)

		err := f.svc.ChangePassword(context.Background(), req, "account-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "current password is incorrect")
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		f := newFixture(t)

		f.accountRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(accountModel.Account{}, nil)

		err := f.svc.ChangePassword(context.Background(), req, "account-404")
		require.Error(t, err)
	})
}
