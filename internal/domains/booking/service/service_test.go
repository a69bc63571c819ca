package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"velvet/config"
	"velvet/infras/kafka"
	"velvet/infras/otel/mocks"
	"velvet/infras/payment"
	paymentMocks "velvet/infras/payment/mocks"
	bookingMocks "velvet/internal/domains/booking/mocks"
	"velvet/internal/domains/booking/model"
	"velvet/internal/domains/booking/model/dto"
	"velvet/internal/domains/booking/qrtoken"
	"velvet/internal/domains/booking/service"
	"velvet/internal/domains/booking/snapshot"
	snapshotMocks "velvet/internal/domains/booking/snapshot/mocks"
	partyMocks "velvet/internal/domains/party/mocks"
	venueMocks "velvet/internal/domains/venue/mocks"
	venueModel "velvet/internal/domains/venue/model"
	gCache "velvet/shared/cache"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	gModel "velvet/shared/model"
)

// Kafka and cache writes happen on detached goroutines, so the tests use inert
// stubs instead of gomock to keep expectations deterministic.
type stubKafka struct{}

func (stubKafka) SendMessages(_ context.Context, _ string, _ ...kafka.Message) error { return nil }
func (stubKafka) Consume(_ context.Context, _, _ string, _ func(kafkaGo.Message))   {}
func (stubKafka) Reader(_, _ string) *kafkaGo.Reader                                { return nil }

type stubCache struct{}

func (stubCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (stubCache) Get(_ context.Context, _ string, _ any) error         { return gCache.Nil }
func (stubCache) Delete(_ context.Context, _ string) error             { return nil }
func (stubCache) Clear(_ context.Context, _ string) error              { return nil }

func (stubCache) AcquireLock(_ context.Context, _ string, _ int) (bool, error) { return true, nil }

type fixture struct {
	repo      *bookingMocks.MockBooking
	venueRepo *venueMocks.MockVenue
	comboRepo *venueMocks.MockCombo
	tableRepo *venueMocks.MockVenueTable
	vouchRepo *venueMocks.MockVoucher
	resolver  *partyMocks.MockResolver
	snapshots *snapshotMocks.MockStore
	gateway   *paymentMocks.MockGateway
	qr        qrtoken.Service
	cfg       *config.Config
	svc       service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.MaxDiscountPercentage = 100
	cfg.Booking.CompletionGraceDays = 7
	cfg.Booking.QRSalt = "test-salt"
	cfg.Cache.TTL = 60

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		venueRepo: venueMocks.NewMockVenue(ctrl),
		comboRepo: venueMocks.NewMockCombo(ctrl),
		tableRepo: venueMocks.NewMockVenueTable(ctrl),
		vouchRepo: venueMocks.NewMockVoucher(ctrl),
		resolver:  partyMocks.NewMockResolver(ctrl),
		snapshots: snapshotMocks.NewMockStore(ctrl),
		gateway:   paymentMocks.NewMockGateway(ctrl),
		qr:        qrtoken.New(cfg),
		cfg:       cfg,
	}

	f.svc = service.New(
		cfg,
		f.repo,
		f.venueRepo,
		f.comboRepo,
		f.tableRepo,
		f.vouchRepo,
		f.resolver,
		f.snapshots,
		f.qr,
		f.gateway,
		stubCache{},
		stubKafka{},
		mocks.NewOtel(),
	)

	return f
}

func customerCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, accountID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)
}

func venueCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, accountID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleVenue)
}

func paidBooking(status model.ScheduleStatus) model.BookedSchedule {
	now := time.Now()

	return model.BookedSchedule{
		ID:             "booking-1",
		BookerID:       "customer-1",
		ReceiverID:     "venue-1",
		BookingType:    model.BookingTypeTable,
		OriginalPrice:  500_000,
		FinalPayment:   500_000,
		PaymentStatus:  model.PaymentStatusPaid,
		ScheduleStatus: status,
		BookingDate:    now,
		StartTime:      now,
		EndTime:        now.Add(4 * time.Hour),
		SnapshotRef:    "snap-1",
		Metadata:       gModel.Metadata{CreatedAt: now, ModifiedAt: now},
	}
}

func TestScan_ProgressesThenReportsAlreadyCheckedIn(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-1", nil).
		AnyTimes()

	booking := paidBooking(model.ScheduleStatusPending)
	token := f.qr.Issue(booking, snapshot.Detail{BarName: "Velvet Room"})

	// First scan confirms the pending booking.
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), booking.ID, model.ScheduleStatusPending, model.ScheduleStatusConfirmed, nil).
		Return(true, nil)

	res, err := f.svc.Scan(ctx, token)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.False(t, res.AlreadyConfirmed)
	assert.Equal(t, model.ScheduleStatusConfirmed.String(), res.NewStatus)

	// Second scan marks arrival.
	booking.ScheduleStatus = model.ScheduleStatusConfirmed
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), booking.ID, model.ScheduleStatusConfirmed, model.ScheduleStatusArrived, nil).
		Return(true, nil)

	res, err = f.svc.Scan(ctx, token)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, model.ScheduleStatusArrived.String(), res.NewStatus)

	// Third scan is acknowledged without another transition. It is not a
	// fresh check-in, so the scanner must not treat it as valid.
	booking.ScheduleStatus = model.ScheduleStatusArrived
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

	res, err = f.svc.Scan(ctx, token)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.AlreadyConfirmed)
	assert.Equal(t, model.ScheduleStatusArrived.String(), res.NewStatus)
}

func TestScan_RejectsTamperedToken(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	booking := paidBooking(model.ScheduleStatusPending)
	token := f.qr.Issue(booking, snapshot.Detail{})
	token.Amount = 1 // tamper

	res, err := f.svc.Scan(ctx, token)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Reason)
}

func TestScan_UnpaidBookingIsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-1", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	booking.PaymentStatus = model.PaymentStatusPending
	token := f.qr.Issue(booking, snapshot.Detail{})

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

	res, err := f.svc.Scan(ctx, token)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "booking is not paid", res.Reason)
}

func TestScan_OtherVenueTokenIsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-2", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	token := f.qr.Issue(booking, snapshot.Detail{})

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

	res, err := f.svc.Scan(ctx, token)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "booking belongs to another venue", res.Reason)
}

func TestConfirm_CancelsCompetingPending(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-1", nil)

	winner := paidBooking(model.ScheduleStatusPending)

	losers := []model.BookedSchedule{
		{ID: "loser-1", ReceiverID: "venue-1", ScheduleStatus: model.ScheduleStatusPending},
		{ID: "loser-2", ReceiverID: "venue-1", ScheduleStatus: model.ScheduleStatusPending},
		{ID: "loser-3", ReceiverID: "venue-1", ScheduleStatus: model.ScheduleStatusPending},
	}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(winner, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), winner.ID, model.ScheduleStatusPending, model.ScheduleStatusConfirmed, nil).
		Return(true, nil)
	f.repo.EXPECT().
		GetPendingByVenueAndDate(gomock.Any(), winner.ReceiverID, winner.ID, winner.BookingDate).
		Return(losers, nil)

	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), "loser-1", model.ScheduleStatusPending, model.ScheduleStatusCancelled, nil).
		Return(true, nil)
	// One loser left pending status in the meantime; the sweep moves on.
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), "loser-2", model.ScheduleStatusPending, model.ScheduleStatusCancelled, nil).
		Return(false, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), "loser-3", model.ScheduleStatusPending, model.ScheduleStatusCancelled, nil).
		Return(true, nil)

	res, err := f.svc.Confirm(ctx, winner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusConfirmed.String(), res.ScheduleStatus)
}

func TestConfirm_ForbiddenForOtherVenue(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-2", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

	_, err := f.svc.Confirm(ctx, booking.ID)
	require.Error(t, err)
}

func TestCancel_PaidBookingConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

	_, err := f.svc.Cancel(ctx, booking.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")
}

func TestCancel_UnpaidPendingSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	booking.PaymentStatus = model.PaymentStatusPending

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), booking.ID, model.ScheduleStatusPending, model.ScheduleStatusCancelled, nil).
		Return(true, nil)

	res, err := f.svc.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusCancelled.String(), res.ScheduleStatus)
}

func TestCreate_VoucherBelowMinSpendCreatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	now := time.Now()

	f.venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Venue{ID: "venue-1", Name: "Velvet Room"}, nil)
	f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.VenueTable{ID: "table-1", VenueID: "venue-1"}, nil)
	f.comboRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Combo{ID: "combo-1", VenueID: "venue-1", Price: 300_000, Active: true}, nil)
	f.vouchRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Voucher{
			ID:                 "voucher-1",
			VenueID:            "venue-1",
			Code:               "BIGNIGHT",
			DiscountPercentage: 20,
			MinSpend:           500_000,
			Active:             true,
			ValidFrom:          now.Add(-time.Hour),
			ValidTo:            now.Add(time.Hour),
		}, nil)

	// No snapshot, no insert, no voucher consumption.
	_, err := f.svc.Create(ctx, dto.CreateBookingRequest{
		VenueID:     "venue-1",
		TableID:     "table-1",
		ComboID:     "combo-1",
		VoucherCode: "BIGNIGHT",
		BookingDate: "2026-09-05",
		StartTime:   "21:00",
		EndTime:     "01:00",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum spend")
}

func TestCreate_HappyPathSnapshotsThenInserts(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	f.venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Venue{ID: "venue-1", Name: "Velvet Room"}, nil)
	f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.VenueTable{ID: "table-1", VenueID: "venue-1", Name: "VIP 3"}, nil)
	f.comboRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Combo{ID: "combo-1", VenueID: "venue-1", Name: "Gold", Price: 500_000, Active: true}, nil)

	f.snapshots.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, detail snapshot.Detail) (string, error) {
			assert.Equal(t, "Velvet Room", detail.BarName)
			assert.Equal(t, int64(500_000), detail.Combo.Price)
			assert.Nil(t, detail.Voucher)

			return "snap-ref-1", nil
		})

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.BookedSchedule) error {
			assert.Equal(t, "snap-ref-1", booking.SnapshotRef)
			assert.Equal(t, int64(500_000), booking.FinalPayment)
			assert.Equal(t, model.ScheduleStatusPending, booking.ScheduleStatus)
			assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
			assert.True(t, booking.EndTime.After(booking.StartTime))

			return nil
		})

	res, err := f.svc.Create(ctx, dto.CreateBookingRequest{
		VenueID:     "venue-1",
		TableID:     "table-1",
		ComboID:     "combo-1",
		BookingDate: "2026-09-05",
		StartTime:   "21:00",
		EndTime:     "01:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), res.Booking.FinalPayment)
	assert.Equal(t, int64(0), res.Discount)
}

func TestCreate_InsertFailureReleasesVoucherUsage(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	now := time.Now()

	f.venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Venue{ID: "venue-1", Name: "Velvet Room"}, nil)
	f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.VenueTable{ID: "table-1", VenueID: "venue-1"}, nil)
	f.comboRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Combo{ID: "combo-1", VenueID: "venue-1", Price: 500_000, Active: true}, nil)
	f.vouchRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		Return(venueModel.Voucher{
			ID:                 "voucher-1",
			VenueID:            "venue-1",
			Code:               "BIGNIGHT",
			DiscountPercentage: 20,
			Active:             true,
			ValidFrom:          now.Add(-time.Hour),
			ValidTo:            now.Add(time.Hour),
		}, nil)

	f.snapshots.EXPECT().Create(gomock.Any(), gomock.Any()).Return("snap-ref-1", nil)
	f.vouchRepo.EXPECT().ConsumeUsage(gomock.Any(), "voucher-1").Return(true, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	f.vouchRepo.EXPECT().ReleaseUsage(gomock.Any(), "voucher-1").Return(nil)

	_, err := f.svc.Create(ctx, dto.CreateBookingRequest{
		VenueID:     "venue-1",
		TableID:     "table-1",
		ComboID:     "combo-1",
		VoucherCode: "BIGNIGHT",
		BookingDate: "2026-09-05",
		StartTime:   "21:00",
		EndTime:     "01:00",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create booking")
}

func TestGet_AutoCompletesAfterGraceWindow(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	booking := paidBooking(model.ScheduleStatusConfirmed)
	booking.EndTime = time.Now().AddDate(0, 0, -8)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), booking.ID, model.ScheduleStatusConfirmed, model.ScheduleStatusCompleted, nil).
		Return(true, nil)
	f.snapshots.EXPECT().Get(gomock.Any(), booking.SnapshotRef).Return(snapshot.Detail{}, nil)

	res, err := f.svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusCompleted.String(), res.Booking.ScheduleStatus)
}

func TestGet_InsideGraceWindowKeepsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	booking := paidBooking(model.ScheduleStatusConfirmed)
	booking.EndTime = time.Now().AddDate(0, 0, -6)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.snapshots.EXPECT().Get(gomock.Any(), booking.SnapshotRef).Return(snapshot.Detail{}, nil)

	res, err := f.svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusConfirmed.String(), res.Booking.ScheduleStatus)
}

func TestHandlePaymentWebhook(t *testing.T) {
	payload := payment.WebhookPayload{
		OrderRef: "booking-1",
		Status:   payment.StatusPaid,
		Amount:   500_000,
	}

	t.Run("bad signature is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.gateway.EXPECT().VerifyWebhook(payload).Return(payment.ErrInvalidSignature)

		err := f.svc.HandlePaymentWebhook(context.Background(), payload)
		require.Error(t, err)
	})

	t.Run("first delivery marks paid", func(t *testing.T) {
		f := newFixture(t)

		booking := paidBooking(model.ScheduleStatusPending)
		booking.PaymentStatus = model.PaymentStatusPending

		f.gateway.EXPECT().VerifyWebhook(payload).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().MarkPaid(gomock.Any(), booking.ID).Return(true, nil)

		err := f.svc.HandlePaymentWebhook(context.Background(), payload)
		require.NoError(t, err)
	})

	t.Run("duplicate delivery is acknowledged", func(t *testing.T) {
		f := newFixture(t)

		booking := paidBooking(model.ScheduleStatusPending)

		f.gateway.EXPECT().VerifyWebhook(payload).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().MarkPaid(gomock.Any(), booking.ID).Return(false, nil)

		err := f.svc.HandlePaymentWebhook(context.Background(), payload)
		require.NoError(t, err)
	})

	t.Run("amount mismatch conflicts", func(t *testing.T) {
		f := newFixture(t)

		booking := paidBooking(model.ScheduleStatusPending)
		booking.PaymentStatus = model.PaymentStatusPending
		booking.FinalPayment = 400_000

		f.gateway.EXPECT().VerifyWebhook(payload).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		err := f.svc.HandlePaymentWebhook(context.Background(), payload)
		require.Error(t, err)
	})
}

func TestOverrideAmount_RerunsCalculator(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-1", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	booking.PaymentStatus = model.PaymentStatusPending

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), booking.ID, model.ScheduleStatusPending, model.ScheduleStatusPending, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _, _ model.ScheduleStatus, extra map[string]any) (bool, error) {
			assert.Equal(t, int64(400_000), extra[model.FieldFinalPayment])
			assert.Equal(t, 20, extra[model.FieldDiscountPercentage])

			return true, nil
		})

	res, err := f.svc.OverrideAmount(ctx, booking.ID, dto.OverrideAmountRequest{DiscountPercentage: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(400_000), res.FinalPayment)
}

func TestCreatePaymentLink(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-1", nil)

	booking := paidBooking(model.ScheduleStatusPending)
	booking.PaymentStatus = model.PaymentStatusPending

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.gateway.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req payment.CreateSessionRequest) (payment.Session, error) {
			assert.Equal(t, booking.FinalPayment, req.Amount)
			assert.Equal(t, booking.ID, req.OrderRef)

			return payment.Session{PaymentURL: "https://pay.example/s/abc", OrderRef: booking.ID}, nil
		})

	res, err := f.svc.CreatePaymentLink(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/abc", res.PaymentURL)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BookedSchedule{}, nil)

	_, err := f.svc.Get(ctx, "missing")
	require.Error(t, err)
}

func TestConfirm_RepositoryErrorPropagates(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BookedSchedule{}, errors.New("db down"))

	_, err := f.svc.Confirm(ctx, "booking-1")
	require.Error(t, err)
}

func staleUnpaidBooking(id string) model.BookedSchedule {
	booking := paidBooking(model.ScheduleStatusPending)
	booking.ID = id
	booking.PaymentStatus = model.PaymentStatusPending
	booking.CreatedAt = time.Now().Add(-48 * time.Hour)

	return booking
}

func TestSweepStaleUnpaid_CountsOnlyWonRaces(t *testing.T) {
	f := newFixture(t)
	f.cfg.Booking.StaleUnpaidHours = 24

	f.repo.EXPECT().
		GetStaleUnpaid(gomock.Any(), gomock.Any()).
		Return([]model.BookedSchedule{staleUnpaidBooking("booking-1"), staleUnpaidBooking("booking-2")}, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), "booking-1", model.ScheduleStatusPending, model.ScheduleStatusRejected, nil).
		Return(true, nil)
	// The second booking was paid or confirmed between the listing and the
	// compare-and-set, so the sweep leaves it alone.
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), "booking-2", model.ScheduleStatusPending, model.ScheduleStatusRejected, nil).
		Return(false, nil)

	swept, err := f.svc.SweepStaleUnpaid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)
}

func TestSweepStaleUnpaid_ListErrorPropagates(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetStaleUnpaid(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := f.svc.SweepStaleUnpaid(context.Background())
	require.Error(t, err)
}

func TestSweepAutoComplete_CompletesOverdueConfirmed(t *testing.T) {
	f := newFixture(t)

	overdue := paidBooking(model.ScheduleStatusConfirmed)
	overdue.EndTime = time.Now().AddDate(0, 0, -10)

	f.repo.EXPECT().
		GetAutoCompletable(gomock.Any(), gomock.Any()).
		Return([]model.BookedSchedule{overdue}, nil)
	f.repo.EXPECT().
		UpdateStatusIf(gomock.Any(), overdue.ID, model.ScheduleStatusConfirmed, model.ScheduleStatusCompleted, nil).
		Return(true, nil)

	swept, err := f.svc.SweepAutoComplete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)
}

func TestGetVenueBookings_FiltersByBookingDate(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-1", nil)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			require.Len(t, filter.Filters, 2)
			assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)

			dateFilter, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldBookingDate, dateFilter.Field)

			date, ok := dateFilter.Value.(time.Time)
			require.True(t, ok)
			assert.Equal(t, "2026-08-30", date.Format(time.DateOnly))

			return 1, nil
		})
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.BookedSchedule{paidBooking(model.ScheduleStatusConfirmed)}, nil)

	res, err := f.svc.GetVenueBookings(ctx, gDto.QueryParams{Limit: 10}, "2026-08-30")
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, 1, res.TotalData)
}

func TestGetVenueBookings_RejectsMalformedDate(t *testing.T) {
	f := newFixture(t)
	ctx := venueCtx("venue-account")

	f.resolver.EXPECT().
		ResolveVenue(gomock.Any(), "venue-account", constant.RoleVenue).
		Return("venue-1", nil)

	_, err := f.svc.GetVenueBookings(ctx, gDto.QueryParams{Limit: 10}, "30-08-2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking_date")
}
