package booking

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"velvet/infras/otel"
	"velvet/internal/domains/booking/model"
	"velvet/internal/domains/booking/model/dto"
	"velvet/internal/domains/booking/qrtoken"
	"velvet/internal/domains/booking/service"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	"velvet/shared/validator"
	"velvet/transport/http/middleware"
	"velvet/transport/http/response"
)

type Handler struct {
	service    service.Booking
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/venue", handler.GetVenueBookings)
		routerGroup.Post("/scan", handler.ScanBooking)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/qr", handler.GetBookingQR)
		routerGroup.Post("/{id}/payment-link", handler.CreatePaymentLink)
		routerGroup.Patch("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Patch("/{id}/arrive", handler.MarkArrived)
		routerGroup.Patch("/{id}/end", handler.EndBooking)
		routerGroup.Patch("/{id}/cancel", handler.CancelBooking)
		routerGroup.Patch("/{id}/reject", handler.RejectBooking)
		routerGroup.Patch("/{id}/amount", handler.OverrideAmount)
	})
}

// CreateBooking handles the creation of a new table booking.
// @Summary Create a new booking
// @Description Create a table booking for a venue, combo and optional voucher.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate booking request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + res.Booking.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyBookings lists the caller's own bookings.
// @Summary Get my bookings
// @Description Retrieve the bookings made by the authenticated customer.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetMyBookings(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my bookings")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetVenueBookings lists the bookings addressed to the caller's venue.
// @Summary Get venue bookings
// @Description Retrieve the bookings received by the authenticated venue.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_date query string false "Filter by booking date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/venue [get]
// @Security BearerAuth
func (handler *Handler) GetVenueBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookingDate := request.URL.Query().Get(model.FieldBookingDate)

	res, err := handler.service.GetVenueBookings(ctx, queryParams, bookingDate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue bookings")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID retrieves one booking joined with its detail snapshot.
// @Summary Get a booking by ID
// @Description Retrieve a booking and its detail snapshot by id.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingQR renders the check-in QR for a paid booking.
// @Summary Get booking QR
// @Description Generate the check-in QR token and PNG for a paid booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.QRResponse] "QR token and image"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/qr [get]
// @Security BearerAuth
func (handler *Handler) GetBookingQR(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingQR")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.GenerateQR(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to generate booking QR")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreatePaymentLink opens a hosted checkout session for a pending booking.
// @Summary Create a payment link
// @Description Create a hosted checkout session for the booking's final amount.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 201 {object} response.Data[dto.PaymentLinkResponse] "Payment link"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/payment-link [post]
// @Security BearerAuth
func (handler *Handler) CreatePaymentLink(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePaymentLink")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.CreatePaymentLink(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to create payment link")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// ScanBooking validates a presented QR token and advances the booking.
// @Summary Scan a booking QR
// @Description Validate a QR token and advance the booking through check-in.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body qrtoken.Token true "Scanned QR token payload"
// @Success 200 {object} response.Data[dto.ScanResult] "Scan outcome"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/bookings/scan [post]
// @Security BearerAuth
func (handler *Handler) ScanBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ScanBooking")
	defer scope.End()

	var token qrtoken.Token
	if err := json.NewDecoder(request.Body).Decode(&token); err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	res, err := handler.service.Scan(ctx, token)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to scan booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ConfirmBooking manually confirms a pending booking.
// @Summary Confirm a booking
// @Description Confirm a pending booking as the receiving venue.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Confirmed booking"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/confirm [patch]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "ConfirmBooking", handler.service.Confirm)
}

// MarkArrived records physical arrival without scanning hardware.
// @Summary Mark a booking as arrived
// @Description Record guest arrival for a confirmed booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Arrived booking"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/arrive [patch]
// @Security BearerAuth
func (handler *Handler) MarkArrived(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "MarkArrived", handler.service.MarkArrived)
}

// EndBooking closes out a confirmed or arrived booking.
// @Summary End a booking
// @Description Complete a confirmed or arrived booking session.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Completed booking"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/end [patch]
// @Security BearerAuth
func (handler *Handler) EndBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "EndBooking", handler.service.End)
}

// CancelBooking cancels the caller's own unpaid pending booking.
// @Summary Cancel a booking
// @Description Cancel an unpaid pending booking as its owner.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Cancelled booking"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "CancelBooking", handler.service.Cancel)
}

// RejectBooking rejects a pending booking as the receiving venue.
// @Summary Reject a booking
// @Description Reject a pending booking as the receiving venue.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Rejected booking"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "RejectBooking", handler.service.Reject)
}

func (handler *Handler) transition(
	writer http.ResponseWriter,
	request *http.Request,
	name string,
	op func(ctx context.Context, id string) (dto.BookingResponse, error),
) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := op(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to transition booking")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + id + " moved to " + res.ScheduleStatus)

	response.WithJSON(writer, http.StatusOK, res)
}

// OverrideAmount re-runs the pricing calculator with a corrected discount.
// @Summary Override a booking amount
// @Description Re-run the pricing calculator for a pending booking with a corrected discount.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.OverrideAmountRequest true "Override Amount Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/amount [patch]
// @Security BearerAuth
func (handler *Handler) OverrideAmount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OverrideAmount")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.OverrideAmountRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate override request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.OverrideAmount(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to override booking amount")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
