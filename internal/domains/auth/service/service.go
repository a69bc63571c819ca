package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"velvet/config"
	"velvet/infras/jwt"
	"velvet/infras/otel"
	accountModel "velvet/internal/domains/account/model"
	accountRepo "velvet/internal/domains/account/repository"
	accountService "velvet/internal/domains/account/service"
	"velvet/internal/domains/auth/model/dto"
	"velvet/shared"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	"velvet/shared/password"
	"velvet/shared/timezone"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, accountID string) error
}

type serviceImpl struct {
	accountRepo    accountRepo.Account
	accountService accountService.Account
	cfg            *config.Config
	otel           otel.Otel
	jwtService     jwt.JWT
}

func New(
	accountRepo accountRepo.Account,
	accountService accountService.Account,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		accountRepo:    accountRepo,
		accountService: accountService,
		cfg:            cfg,
		otel:           otel,
		jwtService:     jwt,
	}
}

// Register creates a customer account and its profile. Other roles go through
// the accounts endpoint, which is gated by back-office permissions.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.accountService.Create(ctx, req.ToAccountRequest(constant.RoleCustomer)); err != nil {
		return err
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	emailFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    accountModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Email,
				Table:    accountModel.TableName,
			},
		},
	}

	account, err := s.accountRepo.Get(ctx, emailFilter)
	if err != nil || account.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password") //nolint:wrapcheck
	}

	if err := password.Verify(req.Password, account.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password") //nolint:wrapcheck
	}

	if !account.Active {
		return res, failure.BadRequestFromString("account is deactivated") //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(account.ID, account.Email, account.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, account.ID)

	if err := s.accountRepo.Update(ctx, updatedFields, emailFilter); err != nil {
		log.Warn().Err(err).Str("accountID", account.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	res.FromTokenPair(tokenPair, account.Role)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") //nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, accountID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(accountID, accountModel.FieldID, accountModel.TableName)

	account, err := s.accountRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		return failure.NotFound(accountModel.EntityName) //nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, account.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, accountID)

	if err = s.accountRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
