package refund

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"velvet/infras/otel"
	"velvet/internal/domains/refund/model/dto"
	"velvet/internal/domains/refund/service"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/validator"
	"velvet/transport/http/middleware"
	"velvet/transport/http/response"
)

type Handler struct {
	service    service.Refund
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Refund, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/refunds", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateRefund)
		routerGroup.Get("/", handler.GetRefunds)
		routerGroup.Get("/{id}", handler.GetRefundByID)
		routerGroup.Patch("/{id}/process", handler.ProcessRefund)
		routerGroup.Patch("/{id}/reject", handler.RejectRefund)
	})
}

// CreateRefund opens a refund request for a paid booking.
// @Summary Create a refund request
// @Description Open a refund request for a paid, confirmed booking with optional evidence.
// @Tags Refund
// @Accept multipart/form-data
// @Produce json
// @Param booked_schedule_id formData string true "Booking ID"
// @Param reason formData string true "Refund reason"
// @Param evidence formData file false "Evidence image"
// @Success 201 {object} response.Data[dto.RefundResponse] "Refund request created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds [post]
// @Security BearerAuth
func (handler *Handler) CreateRefund(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRefund")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRefundRequest{
		BookedScheduleID: request.FormValue("booked_schedule_id"),
		Reason:           request.FormValue("reason"),
	}

	file, fileHeader, err := request.FormFile("evidence")
	if err == nil {
		req.Evidence = fileHeader
		req.EvidenceFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate refund request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create refund request")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Refund request created for booking " + req.BookedScheduleID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRefunds lists refund requests visible to the caller.
// @Summary Get refund requests
// @Description Retrieve refund requests. Back-office roles see all, requesters see their own.
// @Tags Refund
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRefundsResponse] "List of refund requests"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/refunds [get]
// @Security BearerAuth
func (handler *Handler) GetRefunds(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefunds")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refund requests")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRefundByID retrieves one refund request.
// @Summary Get a refund request by ID
// @Description Retrieve a refund request by id.
// @Tags Refund
// @Accept json
// @Produce json
// @Param id path string true "Refund Request ID"
// @Success 200 {object} response.Data[dto.RefundResponse] "Refund request details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/refunds/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRefundByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefundByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("refundID", id).Msg("failed to get refund request")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ProcessRefund settles a refund request with a transfer proof.
// @Summary Process a refund request
// @Description Settle a refund request by uploading the transfer proof.
// @Tags Refund
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Refund Request ID"
// @Param note formData string false "Processing note"
// @Param proof formData file true "Transfer proof image"
// @Success 200 {object} response.Data[dto.RefundResponse] "Refund request settled"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds/{id}/process [patch]
// @Security BearerAuth
func (handler *Handler) ProcessRefund(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessRefund")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.ProcessRefundRequest{
		Note: request.FormValue("note"),
	}

	file, fileHeader, err := request.FormFile("proof")
	if err == nil {
		req.Proof = fileHeader
		req.ProofFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate process request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Process(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("refundID", id).Msg("failed to process refund request")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Refund request " + id + " settled by " + user)

	response.WithJSON(writer, http.StatusOK, res)
}

// RejectRefund declines a refund request with a reason.
// @Summary Reject a refund request
// @Description Decline a refund request with a mandatory reason.
// @Tags Refund
// @Accept json
// @Produce json
// @Param id path string true "Refund Request ID"
// @Param request body dto.RejectRefundRequest true "Reject Refund Request"
// @Success 200 {object} response.Data[dto.RefundResponse] "Refund request rejected"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/refunds/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectRefund(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectRefund")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.RejectRefundRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate reject request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Reject(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("refundID", id).Msg("failed to reject refund request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
