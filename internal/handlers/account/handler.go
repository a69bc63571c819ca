package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"velvet/infras/otel"
	"velvet/internal/domains/account/model"
	"velvet/internal/domains/account/model/dto"
	"velvet/internal/domains/account/service"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/validator"
	"velvet/transport/http/middleware"
	"velvet/transport/http/response"
)

type Handler struct {
	service    service.Account
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Account, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accounts", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateAccount)
		routerGroup.Get("/", handler.GetAccounts)
		routerGroup.Get("/{id}", handler.GetAccountByID)
		routerGroup.Patch("/{id}", handler.UpdateAccount)
	})
}

// CreateAccount provisions an account and its role profile.
// @Summary Create a new account
// @Description Create an account for any role along with its party profile.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} response.Data[dto.AccountResponse] "Account created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [post]
// @Security BearerAuth
func (handler *Handler) CreateAccount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccount")
	defer scope.End()

	req := dto.CreateAccountRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create account")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Account created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAccounts retrieves all accounts based on query parameters.
// @Summary Get all accounts
// @Description Retrieve all accounts with optional filtering and pagination.
// @Tags Account
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Param role query string false "Filter by role"
// @Success 200 {object} response.Data[dto.GetAccountsResponse] "List of accounts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [get]
// @Security BearerAuth
func (handler *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	email := r.URL.Query().Get(model.FieldEmail)
	role := r.URL.Query().Get(model.FieldRole)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	if role != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Operator: gDto.FilterOperatorEq,
			Value:    role,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAccountByID retrieves one account.
// @Summary Get an account by ID
// @Description Retrieve an account by id.
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Data[dto.AccountResponse] "Account details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccountByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccountByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("accountID", id).Msg("failed to get account")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateAccount updates mutable account fields.
// @Summary Update an account
// @Description Update an account's name or active flag.
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Message "Account updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/accounts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAccount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccount")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateAccountRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("accountID", id).Msg("failed to update account")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Account updated " + id)

	response.WithMessage(writer, http.StatusOK, "Account updated successfully")
}
