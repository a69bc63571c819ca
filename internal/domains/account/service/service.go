package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Account=MockAccountService

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"velvet/config"
	"velvet/infras/otel"
	"velvet/internal/domains/account/model"
	"velvet/internal/domains/account/model/dto"
	"velvet/internal/domains/account/repository"
	partyModel "velvet/internal/domains/party/model"
	partyRepo "velvet/internal/domains/party/repository"
	venueModel "velvet/internal/domains/venue/model"
	venueRepo "velvet/internal/domains/venue/repository"
	"velvet/shared"
	"velvet/shared/cache"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	gModel "velvet/shared/model"
	"velvet/shared/password"
	"velvet/shared/timezone"
)

const (
	cacheGetAccount    = "account:get"
	cacheGetAllAccount = "account:gets"
	cacheCountAccount  = "account:count"
)

type Account interface {
	Create(ctx context.Context, req dto.CreateAccountRequest) (dto.AccountResponse, error)
	Get(ctx context.Context, id string) (dto.AccountResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccountsResponse, error)
	Update(ctx context.Context, req dto.UpdateAccountRequest, id string) error
}

type serviceImpl struct {
	repo         repository.Account
	customerRepo partyRepo.Customer
	staffRepo    partyRepo.Staff
	venueRepo    venueRepo.Venue
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Account,
	customerRepo partyRepo.Customer,
	staffRepo partyRepo.Staff,
	venueRepo venueRepo.Venue,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Account {
	return &serviceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		venueRepo:    venueRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create registers an account and the party profile its role acts through.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAccountRequest) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == "" {
		user = constant.ContextGuest
	}

	emailFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Email,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if account exists")

		return res, fmt.Errorf("failed to check if account exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered")
	}

	if err = s.validateProfile(ctx, req); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	account := req.ToModel(user, hashedPassword)

	if err = s.repo.Insert(ctx, account); err != nil {
		log.Error().Err(err).Msg("failed to create account")

		return res, fmt.Errorf("failed to create account: %w", err)
	}

	if err = s.provisionProfile(ctx, account, req); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAccount)
		shared.InvalidateCaches(c, s.cache, cacheCountAccount)
	}()

	res.FromModel(account)

	return res, nil
}

func (s *serviceImpl) validateProfile(ctx context.Context, req dto.CreateAccountRequest) error {
	switch req.Role {
	case constant.RoleStaff:
		if req.VenueID == "" {
			return failure.BadRequestFromString("staff accounts require a venue_id") //nolint:wrapcheck
		}

		venue, err := s.venueRepo.Get(ctx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.VenueTableName))
		if err != nil {
			return err
		}

		if venue.ID == constant.Empty {
			return failure.NotFound(venueModel.VenueEntityName) //nolint:wrapcheck
		}
	case constant.RoleVenue:
		if req.VenueName == "" {
			return failure.BadRequestFromString("venue accounts require a venue_name") //nolint:wrapcheck
		}
	}

	return nil
}

// provisionProfile writes the role-scoped row the booking domain resolves
// actors through. An account left without its profile cannot act, so the
// failure bubbles to the caller.
func (s *serviceImpl) provisionProfile(ctx context.Context, account model.Account, req dto.CreateAccountRequest) error {
	fullName := constant.Empty
	if account.FullName != nil {
		fullName = *account.FullName
	}

	metadata := gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  account.CreatedBy,
		ModifiedBy: account.ModifiedBy,
	}

	var err error

	switch account.Role {
	case constant.RoleCustomer:
		err = s.customerRepo.Insert(ctx, partyModel.Customer{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			FullName:  fullName,
			Phone:     req.Phone,
			Metadata:  metadata,
		})
	case constant.RoleStaff:
		err = s.staffRepo.Insert(ctx, partyModel.Staff{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			VenueID:   req.VenueID,
			FullName:  fullName,
			Metadata:  metadata,
		})
	case constant.RoleVenue:
		err = s.venueRepo.Insert(ctx, venueModel.Venue{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			Name:      req.VenueName,
			Address:   req.VenueAddress,
			Metadata:  metadata,
		})
	}

	if err != nil {
		log.Error().Err(err).Str("accountID", account.ID).Str("role", account.Role).Msg("failed to provision profile")

		return fmt.Errorf("failed to provision profile: %w", err)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAccount, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for account")

		return res, nil
	}

	account, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return res, fmt.Errorf("failed to get account: %w", err)
	}

	if account.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	res.FromModel(account)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllAccounts")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAccount, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for accounts")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accounts")

		return res, fmt.Errorf("failed to count accounts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accounts")

		return res, fmt.Errorf("failed to get accounts: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save accounts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAccountRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateAccountRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if account exists")

		return fmt.Errorf("failed to check if account exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update account")

		return fmt.Errorf("failed to update account: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAccount, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete account from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAccount)
		shared.InvalidateCaches(c, s.cache, cacheCountAccount)
	}()

	return nil
}
