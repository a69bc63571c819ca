package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"velvet/config"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/infras/payment"
	"velvet/internal/domains/booking/model"
	"velvet/internal/domains/booking/model/dto"
	"velvet/internal/domains/booking/pricing"
	"velvet/internal/domains/booking/qrtoken"
	"velvet/internal/domains/booking/repository"
	"velvet/internal/domains/booking/snapshot"
	partyService "velvet/internal/domains/party/service"
	venueModel "velvet/internal/domains/venue/model"
	venueRepo "velvet/internal/domains/venue/repository"
	"velvet/shared"
	"velvet/shared/cache"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	eventCreated   = "booking.created"
	eventConfirmed = "booking.confirmed"
	eventArrived   = "booking.arrived"
	eventCompleted = "booking.completed"
	eventCancelled = "booking.cancelled"
	eventRejected  = "booking.rejected"
	eventPaid      = "booking.paid"
)

type lifecycleEvent struct {
	Event          string    `json:"event"`
	BookingID      string    `json:"booking_id"`
	ReceiverID     string    `json:"receiver_id"`
	ScheduleStatus string    `json:"schedule_status"`
	PaymentStatus  string    `json:"payment_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingDetailResponse, error)
	GetMyBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetVenueBookings(ctx context.Context, params gDto.QueryParams, bookingDate string) (dto.GetBookingsResponse, error)

	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	MarkArrived(ctx context.Context, id string) (dto.BookingResponse, error)
	End(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Reject(ctx context.Context, id string) (dto.BookingResponse, error)
	OverrideAmount(ctx context.Context, id string, req dto.OverrideAmountRequest) (dto.BookingResponse, error)

	Scan(ctx context.Context, token qrtoken.Token) (dto.ScanResult, error)
	GenerateQR(ctx context.Context, id string) (dto.QRResponse, error)
	CreatePaymentLink(ctx context.Context, id string) (dto.PaymentLinkResponse, error)
	HandlePaymentWebhook(ctx context.Context, payload payment.WebhookPayload) error

	SweepStaleUnpaid(ctx context.Context) (int, error)
	SweepAutoComplete(ctx context.Context) (int, error)
}

type serviceImpl struct {
	cfg       *config.Config
	repo      repository.Booking
	venueRepo venueRepo.Venue
	comboRepo venueRepo.Combo
	tableRepo venueRepo.VenueTable
	vouchRepo venueRepo.Voucher
	resolver  partyService.Resolver
	snapshots snapshot.Store
	qr        qrtoken.Service
	gateway   payment.Gateway
	cache     cache.RedisCache
	kafka     kafka.Client
	otel      otel.Otel
}

func New(
	cfg *config.Config,
	repo repository.Booking,
	venueRepo venueRepo.Venue,
	comboRepo venueRepo.Combo,
	tableRepo venueRepo.VenueTable,
	vouchRepo venueRepo.Voucher,
	resolver partyService.Resolver,
	snapshots snapshot.Store,
	qr qrtoken.Service,
	gateway payment.Gateway,
	redisCache cache.RedisCache,
	kafkaClient kafka.Client,
	ot otel.Otel,
) Booking {
	return &serviceImpl{
		cfg:       cfg,
		repo:      repo,
		venueRepo: venueRepo,
		comboRepo: comboRepo,
		tableRepo: tableRepo,
		vouchRepo: vouchRepo,
		resolver:  resolver,
		snapshots: snapshots,
		qr:        qr,
		gateway:   gateway,
		cache:     redisCache,
		kafka:     kafkaClient,
		otel:      ot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	bookerID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return res, err
	}

	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.VenueTableName))
	if err != nil {
		return res, fmt.Errorf("failed to load venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return res, failure.NotFound(venueModel.VenueEntityName) //nolint:wrapcheck
	}

	table, err := s.tableRepo.Get(ctx, shared.FilterByID(req.TableID, venueModel.FieldID, venueModel.TableTableName))
	if err != nil {
		return res, fmt.Errorf("failed to load table: %w", err)
	}

	if table.ID == constant.Empty || table.VenueID != venue.ID {
		return res, failure.NotFound(venueModel.TableEntityName) //nolint:wrapcheck
	}

	combo, err := s.comboRepo.Get(ctx, shared.FilterByID(req.ComboID, venueModel.FieldID, venueModel.ComboTableName))
	if err != nil {
		return res, fmt.Errorf("failed to load combo: %w", err)
	}

	if combo.ID == constant.Empty || combo.VenueID != venue.ID || !combo.Active {
		return res, failure.NotFound(venueModel.ComboEntityName) //nolint:wrapcheck
	}

	voucher, err := s.resolveVoucher(ctx, req.VoucherCode, venue.ID, combo.Price)
	if err != nil {
		return res, err
	}

	discount := 0
	if voucher != nil {
		discount = voucher.DiscountPercentage
	}

	amounts, err := pricing.ComputeAmounts(combo.Price, discount, s.cfg.Booking.MaxDiscountPercentage)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	booking, err := req.ToModel(bookerID, venue.ID, constant.Empty, amounts, accountID)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	detail := snapshot.Detail{
		BookingID: booking.ID,
		BarName:   venue.Name,
		Table: snapshot.TableInfo{
			TableID:   table.ID,
			TableName: table.Name,
			TableType: table.TableType,
		},
		Combo: snapshot.ComboInfo{
			ComboID:   combo.ID,
			ComboName: combo.Name,
			Price:     combo.Price,
		},
		Note:      req.Note,
		CreatedAt: booking.CreatedAt,
	}

	if voucher != nil {
		detail.Voucher = &snapshot.VoucherInfo{
			VoucherID:          voucher.ID,
			Code:               voucher.Code,
			DiscountPercentage: voucher.DiscountPercentage,
		}
	}

	// Snapshot first, canonical row second. A snapshot whose booking insert
	// fails is left orphaned and never referenced.
	ref, err := s.snapshots.Create(ctx, detail)
	if err != nil {
		return res, fmt.Errorf("failed to store booking detail: %w", err)
	}

	booking.SnapshotRef = ref

	if voucher != nil {
		consumed, err := s.vouchRepo.ConsumeUsage(ctx, voucher.ID)
		if err != nil {
			return res, fmt.Errorf("failed to consume voucher: %w", err)
		}

		if !consumed {
			return res, failure.Conflict("voucher usage cap reached") //nolint:wrapcheck
		}
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("snapshotRef", ref).Msg("booking insert failed, snapshot orphaned")

		// The redemption was taken for a booking that never materialized.
		if voucher != nil {
			if releaseErr := s.vouchRepo.ReleaseUsage(ctx, voucher.ID); releaseErr != nil {
				log.Error().Err(releaseErr).Str("voucherID", voucher.ID).Msg("failed to release voucher usage")
			}
		}

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishEvent(ctx, eventCreated, booking)
	s.invalidateListCaches(ctx)

	res.Booking.FromModel(booking)
	res.Detail = detail
	res.Discount = amounts.DiscountAmount

	return res, nil
}

func (s *serviceImpl) resolveVoucher(ctx context.Context, code, venueID string, comboPrice int64) (*venueModel.Voucher, error) {
	if code == constant.Empty {
		return nil, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: venueModel.FieldCode, Value: code, Operator: gDto.FilterOperatorEq, Table: venueModel.VoucherTableName},
			gDto.Filter{Field: venueModel.FieldVenueID, Value: venueID, Operator: gDto.FilterOperatorEq, Table: venueModel.VoucherTableName},
		},
	}

	voucher, err := s.vouchRepo.Get(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher: %w", err)
	}

	if voucher.ID == constant.Empty {
		return nil, failure.NotFound(venueModel.VoucherEntityName) //nolint:wrapcheck
	}

	if err := voucher.ValidateFor(comboPrice, time.Now()); err != nil {
		return nil, failure.Conflict(err.Error()) //nolint:wrapcheck
	}

	return &voucher, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(ctx, booking); err != nil {
		return res, err
	}

	booking = s.reapIfOverdue(ctx, booking)

	res.Booking.FromModel(booking)

	detail, err := s.snapshots.Get(ctx, booking.SnapshotRef)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to load booking detail snapshot")
		}

		return res, nil
	}

	res.Detail = &detail

	return res, nil
}

func (s *serviceImpl) GetMyBookings(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	bookerID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(bookerID, model.FieldBookerID, model.TableName)

	return s.getAll(ctx, params, filter)
}

func (s *serviceImpl) GetVenueBookings(ctx context.Context, params gDto.QueryParams, bookingDate string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVenueBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	venueID, err := s.resolver.ResolveVenue(ctx, accountID, role)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(venueID, model.FieldReceiverID, model.TableName)

	if bookingDate != constant.Empty {
		date, parseErr := time.Parse(time.DateOnly, bookingDate)
		if parseErr != nil {
			return res, failure.BadRequestFromString("booking_date must be YYYY-MM-DD") //nolint:wrapcheck
		}

		filter.Operator = gDto.FilterGroupOperatorAnd
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	return s.getAll(ctx, params, filter)
}

func (s *serviceImpl) getAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	for i := range models {
		models[i] = s.reapIfOverdue(ctx, models[i])
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeReceiver(ctx, booking); err != nil {
		return res, err
	}

	booking, err = s.transition(ctx, booking, model.ScheduleStatusPending, model.ScheduleStatusConfirmed, eventConfirmed)
	if err != nil {
		return res, err
	}

	s.cancelCompetingPending(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

// cancelCompetingPending closes out every other pending request for the date
// the confirmed booking just won. It runs only after the confirmation is
// committed, and each cancellation is independent; one failure never aborts
// the rest.
func (s *serviceImpl) cancelCompetingPending(ctx context.Context, winner model.BookedSchedule) {
	losers, err := s.repo.GetPendingByVenueAndDate(ctx, winner.ReceiverID, winner.ID, winner.BookingDate)
	if err != nil {
		log.Error().Err(err).Str("bookingID", winner.ID).Msg("failed to list competing pending bookings")

		return
	}

	for _, loser := range losers {
		updated, err := s.repo.UpdateStatusIf(ctx, loser.ID, model.ScheduleStatusPending, model.ScheduleStatusCancelled, nil)
		if err != nil {
			log.Error().Err(err).Str("bookingID", loser.ID).Msg("failed to cancel competing booking")

			continue
		}

		if updated {
			loser.ScheduleStatus = model.ScheduleStatusCancelled
			s.publishEvent(ctx, eventCancelled, loser)
		}
	}

	s.invalidateListCaches(ctx)
}

func (s *serviceImpl) MarkArrived(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkArrived")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeReceiver(ctx, booking); err != nil {
		return res, err
	}

	booking, err = s.transition(ctx, booking, model.ScheduleStatusConfirmed, model.ScheduleStatusArrived, eventArrived)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) End(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EndBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeReceiver(ctx, booking); err != nil {
		return res, err
	}

	from := booking.ScheduleStatus
	if from != model.ScheduleStatusConfirmed && from != model.ScheduleStatusArrived {
		return res, failure.Conflict(fmt.Sprintf("booking cannot be completed from status %s", from)) //nolint:wrapcheck
	}

	booking, err = s.transition(ctx, booking, from, model.ScheduleStatusCompleted, eventCompleted)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	bookerID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return res, err
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.BookerID != bookerID {
		return res, failure.Forbidden("only the booking owner may cancel") //nolint:wrapcheck
	}

	if booking.PaymentStatus == model.PaymentStatusPaid {
		return res, failure.Conflict("booking already paid, contact the venue for a refund") //nolint:wrapcheck
	}

	booking, err = s.transition(ctx, booking, model.ScheduleStatusPending, model.ScheduleStatusCancelled, eventCancelled)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RejectBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeReceiver(ctx, booking); err != nil {
		return res, err
	}

	booking, err = s.transition(ctx, booking, model.ScheduleStatusPending, model.ScheduleStatusRejected, eventRejected)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) OverrideAmount(ctx context.Context, id string, req dto.OverrideAmountRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OverrideAmount")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeReceiver(ctx, booking); err != nil {
		return res, err
	}

	if booking.PaymentStatus == model.PaymentStatusPaid {
		return res, failure.Conflict("booking already paid, amount can no longer change") //nolint:wrapcheck
	}

	amounts, err := pricing.ComputeAmounts(booking.OriginalPrice, req.DiscountPercentage, s.cfg.Booking.MaxDiscountPercentage)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	// The pending guard doubles as the concurrency check: a booking confirmed
	// or cancelled mid-flight keeps its settled amount.
	updated, err := s.repo.UpdateStatusIf(ctx, booking.ID, model.ScheduleStatusPending, model.ScheduleStatusPending, map[string]any{
		model.FieldDiscountPercentage: amounts.DiscountPercentage,
		model.FieldFinalPayment:       amounts.FinalPayment,
	})
	if err != nil {
		return res, fmt.Errorf("failed to override amount: %w", err)
	}

	if !updated {
		return res, failure.Conflict("amount can only change while the booking is pending") //nolint:wrapcheck
	}

	booking.DiscountPercentage = amounts.DiscountPercentage
	booking.FinalPayment = amounts.FinalPayment

	s.invalidateBookingCaches(ctx, booking.ID)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Scan(ctx context.Context, token qrtoken.Token) (res dto.ScanResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ScanBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := s.qr.Verify(token); err != nil {
		return dto.ScanResult{Valid: false, Reason: err.Error()}, nil
	}

	booking, err := s.loadBooking(ctx, token.BookingID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return dto.ScanResult{Valid: false, Reason: "booking not found"}, nil
		}

		return res, err
	}

	// The checksum binds id and amount, so a stale token issued before an
	// amount override no longer verifies.
	if token.Amount != booking.FinalPayment {
		return dto.ScanResult{Valid: false, Reason: "token amount does not match booking"}, nil
	}

	// Ownership is a scan guard like payment and checksum, so it reports
	// through the result envelope rather than a transport error.
	if authErr := s.authorizeReceiver(ctx, booking); authErr != nil {
		if failure.GetCode(authErr) != http.StatusForbidden {
			return res, authErr
		}

		return dto.ScanResult{Valid: false, Reason: "booking belongs to another venue"}, nil
	}

	if booking.PaymentStatus != model.PaymentStatusPaid {
		return dto.ScanResult{Valid: false, Reason: "booking is not paid"}, nil
	}

	switch booking.ScheduleStatus {
	case model.ScheduleStatusPending:
		booking, err = s.transition(ctx, booking, model.ScheduleStatusPending, model.ScheduleStatusConfirmed, eventConfirmed)
	case model.ScheduleStatusConfirmed:
		booking, err = s.transition(ctx, booking, model.ScheduleStatusConfirmed, model.ScheduleStatusArrived, eventArrived)
	case model.ScheduleStatusArrived, model.ScheduleStatusCompleted:
		var out dto.BookingResponse
		out.FromModel(booking)

		return dto.ScanResult{
			Valid:            false,
			AlreadyConfirmed: true,
			Reason:           "guest already checked in",
			NewStatus:        booking.ScheduleStatus.String(),
			Booking:          &out,
		}, nil
	default:
		return dto.ScanResult{Valid: false, Reason: fmt.Sprintf("booking is %s", booking.ScheduleStatus)}, nil
	}

	if err != nil {
		return res, err
	}

	var out dto.BookingResponse
	out.FromModel(booking)

	return dto.ScanResult{
		Valid:     true,
		NewStatus: booking.ScheduleStatus.String(),
		Booking:   &out,
	}, nil
}

func (s *serviceImpl) GenerateQR(ctx context.Context, id string) (res dto.QRResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GenerateQR")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(ctx, booking); err != nil {
		return res, err
	}

	if booking.PaymentStatus != model.PaymentStatusPaid {
		return res, failure.Conflict("QR is issued after payment") //nolint:wrapcheck
	}

	detail, err := s.snapshots.Get(ctx, booking.SnapshotRef)
	if err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		return res, fmt.Errorf("failed to load booking detail: %w", err)
	}

	token := s.qr.Issue(booking, detail)

	image, err := s.qr.RenderPNG(token)
	if err != nil {
		return res, fmt.Errorf("failed to render QR: %w", err)
	}

	if booking.SnapshotRef != constant.Empty {
		if err := s.snapshots.AttachQRImage(ctx, booking.SnapshotRef, image); err != nil {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to attach QR image to snapshot")
		}
	}

	res.Token = token
	res.Image = image

	return res, nil
}

func (s *serviceImpl) CreatePaymentLink(ctx context.Context, id string) (res dto.PaymentLinkResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePaymentLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	bookerID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return res, err
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.BookerID != bookerID {
		return res, failure.Forbidden("only the booking owner may pay") //nolint:wrapcheck
	}

	if booking.PaymentStatus == model.PaymentStatusPaid {
		return res, failure.Conflict("booking is already paid") //nolint:wrapcheck
	}

	if booking.ScheduleStatus.Terminal() {
		return res, failure.Conflict(fmt.Sprintf("booking is %s", booking.ScheduleStatus)) //nolint:wrapcheck
	}

	session, err := s.gateway.CreateSession(ctx, payment.CreateSessionRequest{
		Amount:      booking.FinalPayment,
		OrderRef:    booking.ID,
		Description: fmt.Sprintf("table booking %s", booking.ID),
		ReturnURL:   s.cfg.Payment.ReturnURL,
		CancelURL:   s.cfg.Payment.CancelURL,
	})
	if err != nil {
		return res, fmt.Errorf("failed to create payment session: %w", err)
	}

	res.PaymentURL = session.PaymentURL
	res.OrderRef = session.OrderRef

	return res, nil
}

func (s *serviceImpl) HandlePaymentWebhook(ctx context.Context, payload payment.WebhookPayload) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandlePaymentWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.gateway.VerifyWebhook(payload); err != nil {
		return failure.Unauthorized("invalid webhook signature") //nolint:wrapcheck
	}

	if payload.Status != payment.StatusPaid {
		log.Info().Str("orderRef", payload.OrderRef).Str("status", payload.Status).Msg("ignoring non-paid webhook")

		return nil
	}

	booking, err := s.loadBooking(ctx, payload.OrderRef)
	if err != nil {
		return err
	}

	if payload.Amount != booking.FinalPayment {
		return failure.Conflict("webhook amount does not match booking") //nolint:wrapcheck
	}

	updated, err := s.repo.MarkPaid(ctx, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}

	// Gateways retry webhooks. A second delivery finds the flag already set
	// and is acknowledged without a second event.
	if !updated {
		log.Info().Str("bookingID", booking.ID).Msg("duplicate payment webhook ignored")

		return nil
	}

	booking.PaymentStatus = model.PaymentStatusPaid
	s.publishEvent(ctx, eventPaid, booking)
	s.invalidateBookingCaches(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) loadBooking(ctx context.Context, id string) (model.BookedSchedule, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	return booking, nil
}

// transition performs a guarded status move and reports a conflict when the
// row was not in the expected status anymore.
func (s *serviceImpl) transition(ctx context.Context, booking model.BookedSchedule, from, to model.ScheduleStatus, event string) (model.BookedSchedule, error) {
	if !from.CanTransitionTo(to) {
		return booking, failure.Conflict(fmt.Sprintf("booking cannot move from %s to %s", from, to)) //nolint:wrapcheck
	}

	updated, err := s.repo.UpdateStatusIf(ctx, booking.ID, from, to, nil)
	if err != nil {
		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !updated {
		return booking, failure.Conflict(fmt.Sprintf("booking is no longer %s", from)) //nolint:wrapcheck
	}

	booking.ScheduleStatus = to
	s.publishEvent(ctx, event, booking)
	s.invalidateBookingCaches(ctx, booking.ID)

	return booking, nil
}

// reapIfOverdue lazily completes a booking whose grace window elapsed, so reads
// never surface a stale confirmed or arrived status between sweeper runs.
func (s *serviceImpl) reapIfOverdue(ctx context.Context, booking model.BookedSchedule) model.BookedSchedule {
	if !booking.AutoCompletable(s.cfg.Booking.CompletionGraceDays, time.Now()) {
		return booking
	}

	updated, err := s.repo.UpdateStatusIf(ctx, booking.ID, booking.ScheduleStatus, model.ScheduleStatusCompleted, nil)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to auto-complete booking")

		return booking
	}

	if updated {
		booking.ScheduleStatus = model.ScheduleStatusCompleted
		s.publishEvent(ctx, eventCompleted, booking)
	}

	return booking
}

// SweepStaleUnpaid rejects pending bookings whose payment window has lapsed.
// Each booking is guarded by its own compare-and-set, so a concurrent manual
// confirmation or payment wins over the sweep.
func (s *serviceImpl) SweepStaleUnpaid(ctx context.Context) (swept int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SweepStaleUnpaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := time.Now().Add(-time.Duration(s.cfg.Booking.StaleUnpaidHours) * time.Hour)

	stale, err := s.repo.GetStaleUnpaid(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, booking := range stale {
		updated, updateErr := s.repo.UpdateStatusIf(ctx, booking.ID, model.ScheduleStatusPending, model.ScheduleStatusRejected, nil)
		if updateErr != nil {
			log.Error().Err(updateErr).Str("bookingID", booking.ID).Msg("failed to reject stale booking")

			continue
		}

		if !updated {
			continue
		}

		booking.ScheduleStatus = model.ScheduleStatusRejected
		s.publishEvent(ctx, eventRejected, booking)
		swept++
	}

	if swept > 0 {
		s.invalidateListCaches(ctx)
	}

	return swept, nil
}

// SweepAutoComplete closes out paid, confirmed bookings whose end time passed
// the grace window without anyone ending them by hand.
func (s *serviceImpl) SweepAutoComplete(ctx context.Context) (swept int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SweepAutoComplete")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Booking.CompletionGraceDays)

	overdue, err := s.repo.GetAutoCompletable(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, booking := range overdue {
		updated, updateErr := s.repo.UpdateStatusIf(ctx, booking.ID, model.ScheduleStatusConfirmed, model.ScheduleStatusCompleted, nil)
		if updateErr != nil {
			log.Error().Err(updateErr).Str("bookingID", booking.ID).Msg("failed to auto-complete booking")

			continue
		}

		if !updated {
			continue
		}

		booking.ScheduleStatus = model.ScheduleStatusCompleted
		s.publishEvent(ctx, eventCompleted, booking)
		swept++
	}

	if swept > 0 {
		s.invalidateListCaches(ctx)
	}

	return swept, nil
}

func (s *serviceImpl) authorizeRead(ctx context.Context, booking model.BookedSchedule) error {
	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return nil
	}

	partyID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return err
	}

	if booking.BookerID == partyID {
		return nil
	}

	venueID, err := s.resolver.ResolveVenue(ctx, accountID, role)
	if err == nil && booking.ReceiverID == venueID {
		return nil
	}

	return failure.Forbidden("booking belongs to another party") //nolint:wrapcheck
}

func (s *serviceImpl) authorizeReceiver(ctx context.Context, booking model.BookedSchedule) error {
	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	venueID, err := s.resolver.ResolveVenue(ctx, accountID, role)
	if err != nil {
		return err
	}

	if booking.ReceiverID != venueID {
		return failure.Forbidden("booking belongs to another venue") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.BookedSchedule) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: booking.ID,
			Value: lifecycleEvent{
				Event:          event,
				BookingID:      booking.ID,
				ReceiverID:     booking.ReceiverID,
				ScheduleStatus: booking.ScheduleStatus.String(),
				PaymentStatus:  booking.PaymentStatus.String(),
				OccurredAt:     time.Now(),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, msg); err != nil {
			log.Error().Err(err).Str("event", event).Str("bookingID", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, fmt.Sprintf("%s:%s", cacheGetBooking, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}