package service_test

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"velvet/config"
	"velvet/infras/kafka"
	"velvet/infras/otel/mocks"
	s3Mocks "velvet/infras/s3/mocks"
	bookingMocks "velvet/internal/domains/booking/mocks"
	bookingModel "velvet/internal/domains/booking/model"
	partyMocks "velvet/internal/domains/party/mocks"
	refundMocks "velvet/internal/domains/refund/mocks"
	"velvet/internal/domains/refund/model"
	"velvet/internal/domains/refund/model/dto"
	"velvet/internal/domains/refund/service"
	"velvet/shared/constant"
	"velvet/shared/failure"
)

type stubKafka struct{}

func (stubKafka) SendMessages(_ context.Context, _ string, _ ...kafka.Message) error { return nil }
func (stubKafka) Consume(_ context.Context, _, _ string, _ func(kafkaGo.Message))   {}
func (stubKafka) Reader(_, _ string) *kafkaGo.Reader                                { return nil }

type fixture struct {
	repo        *refundMocks.MockRefund
	bookingRepo *bookingMocks.MockBooking
	resolver    *partyMocks.MockResolver
	s3          *s3Mocks.MockS3
	svc         service.Refund
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "velvet-refunds"

	f := &fixture{
		repo:        refundMocks.NewMockRefund(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		resolver:    partyMocks.NewMockResolver(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(cfg, f.repo, f.bookingRepo, f.resolver, f.s3, stubKafka{}, mocks.NewOtel())

	return f
}

func customerCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, accountID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)
}

func accountantCtx(accountID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, accountID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAccountant)
}

func confirmedPaidBooking() bookingModel.BookedSchedule {
	return bookingModel.BookedSchedule{
		ID:             "booking-1",
		BookerID:       "customer-1",
		ReceiverID:     "venue-1",
		FinalPayment:   450_000,
		PaymentStatus:  bookingModel.PaymentStatusPaid,
		ScheduleStatus: bookingModel.ScheduleStatusConfirmed,
	}
}

func TestCreate(t *testing.T) {
	req := dto.CreateRefundRequest{
		BookedScheduleID: "booking-1",
		Reason:           "venue could not honor the table",
	}

	t.Run("confirmed paid booking creates request for full amount", func(t *testing.T) {
		f := newFixture(t)
		ctx := customerCtx("customer-account")

		f.resolver.EXPECT().
			Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
			Return("customer-1", nil)
		f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedPaidBooking(), nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, refund model.RefundRequest) error {
				assert.Equal(t, "booking-1", refund.BookedScheduleID)
				assert.Equal(t, int64(450_000), refund.Amount)
				assert.Equal(t, model.StatusPending, refund.Status)

				return nil
			})

		res, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending.String(), res.Status)
	})

	t.Run("unconfirmed booking conflicts", func(t *testing.T) {
		f := newFixture(t)
		ctx := customerCtx("customer-account")

		booking := confirmedPaidBooking()
		booking.ScheduleStatus = bookingModel.ScheduleStatusPending

		f.resolver.EXPECT().
			Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
			Return("customer-1", nil)
		f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)
	})

	t.Run("someone else's booking is forbidden", func(t *testing.T) {
		f := newFixture(t)
		ctx := customerCtx("customer-account")

		f.resolver.EXPECT().
			Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
			Return("customer-2", nil)
		f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedPaidBooking(), nil)

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)
	})

	t.Run("duplicate request surfaces the index conflict", func(t *testing.T) {
		f := newFixture(t)
		ctx := customerCtx("customer-account")

		f.resolver.EXPECT().
			Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
			Return("customer-1", nil)
		f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedPaidBooking(), nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(failure.Conflict("an active refund request already exists for this booking"))

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestProcess(t *testing.T) {
	proof := &multipart.FileHeader{Filename: "transfer.png"}

	pendingRefund := model.RefundRequest{
		ID:               "refund-1",
		BookedScheduleID: "booking-1",
		RequesterID:      "customer-1",
		Amount:           450_000,
		Status:           model.StatusPending,
	}

	t.Run("completes with proof and processor stamp", func(t *testing.T) {
		f := newFixture(t)
		ctx := accountantCtx("accountant-account")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRefund, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), "velvet-refunds", model.EntityName, gomock.Any(), proof, gomock.Any()).
			Return("https://s3.example/proof.png", nil)
		f.repo.EXPECT().
			Settle(gomock.Any(), "refund-1", model.StatusCompleted, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ model.Status, extra map[string]any) (bool, error) {
				assert.Equal(t, "https://s3.example/proof.png", extra[model.FieldProofURL])
				assert.Equal(t, "accountant-account", extra[model.FieldProcessedBy])
				assert.IsType(t, time.Time{}, extra[model.FieldProcessedAt])

				return true, nil
			})

		res, err := f.svc.Process(ctx, "refund-1", dto.ProcessRefundRequest{Proof: proof})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted.String(), res.Status)
		assert.Equal(t, "https://s3.example/proof.png", res.ProofURL)
	})

	t.Run("missing proof is a validation error", func(t *testing.T) {
		f := newFixture(t)
		ctx := accountantCtx("accountant-account")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRefund, nil)

		_, err := f.svc.Process(ctx, "refund-1", dto.ProcessRefundRequest{})
		require.Error(t, err)
	})

	t.Run("already settled request conflicts", func(t *testing.T) {
		f := newFixture(t)
		ctx := accountantCtx("accountant-account")

		settled := pendingRefund
		settled.Status = model.StatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(settled, nil)

		_, err := f.svc.Process(ctx, "refund-1", dto.ProcessRefundRequest{Proof: proof})
		require.Error(t, err)
	})

	t.Run("losing the settle race conflicts", func(t *testing.T) {
		f := newFixture(t)
		ctx := accountantCtx("accountant-account")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRefund, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), "velvet-refunds", model.EntityName, gomock.Any(), proof, gomock.Any()).
			Return("https://s3.example/proof.png", nil)
		f.repo.EXPECT().
			Settle(gomock.Any(), "refund-1", model.StatusCompleted, gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Process(ctx, "refund-1", dto.ProcessRefundRequest{Proof: proof})
		require.Error(t, err)
	})
}

func TestReject(t *testing.T) {
	pendingRefund := model.RefundRequest{
		ID:          "refund-1",
		RequesterID: "customer-1",
		Status:      model.StatusPending,
	}

	t.Run("rejects with reason", func(t *testing.T) {
		f := newFixture(t)
		ctx := accountantCtx("accountant-account")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRefund, nil)
		f.repo.EXPECT().
			Settle(gomock.Any(), "refund-1", model.StatusRejected, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ model.Status, extra map[string]any) (bool, error) {
				assert.Equal(t, "no evidence of service failure", extra[model.FieldRejectionReason])

				return true, nil
			})

		res, err := f.svc.Reject(ctx, "refund-1", dto.RejectRefundRequest{Reason: "no evidence of service failure"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected.String(), res.Status)
	})

	t.Run("blank reason is rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := accountantCtx("accountant-account")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingRefund, nil)

		_, err := f.svc.Reject(ctx, "refund-1", dto.RejectRefundRequest{Reason: "   "})
		require.Error(t, err)
	})
}

func TestGet_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := customerCtx("customer-account")

	refund := model.RefundRequest{ID: "refund-1", RequesterID: "customer-1"}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(refund, nil)
	f.resolver.EXPECT().
		Resolve(gomock.Any(), "customer-account", constant.RoleCustomer).
		Return("customer-2", nil)

	_, err := f.svc.Get(ctx, "refund-1")
	require.Error(t, err)
}
