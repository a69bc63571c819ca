package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"velvet/config"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/infras/s3"
	bookingModel "velvet/internal/domains/booking/model"
	bookingRepo "velvet/internal/domains/booking/repository"
	partyService "velvet/internal/domains/party/service"
	"velvet/internal/domains/refund/model"
	"velvet/internal/domains/refund/model/dto"
	"velvet/internal/domains/refund/repository"
	"velvet/shared"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	gModel "velvet/shared/model"
	"velvet/shared/timezone"
)

const (
	eventRequested = "refund.requested"
	eventCompleted = "refund.completed"
	eventRejected  = "refund.rejected"
)

type refundEvent struct {
	Event            string    `json:"event"`
	RefundID         string    `json:"refund_id"`
	BookedScheduleID string    `json:"booked_schedule_id"`
	Status           string    `json:"status"`
	Amount           int64     `json:"amount"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type Refund interface {
	Create(ctx context.Context, req dto.CreateRefundRequest) (dto.RefundResponse, error)
	Get(ctx context.Context, id string) (dto.RefundResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetRefundsResponse, error)
	Process(ctx context.Context, id string, req dto.ProcessRefundRequest) (dto.RefundResponse, error)
	Reject(ctx context.Context, id string, req dto.RejectRefundRequest) (dto.RefundResponse, error)
}

type serviceImpl struct {
	cfg         *config.Config
	repo        repository.Refund
	bookingRepo bookingRepo.Booking
	resolver    partyService.Resolver
	s3          s3.S3
	kafka       kafka.Client
	otel        otel.Otel
}

func New(
	cfg *config.Config,
	repo repository.Refund,
	bookings bookingRepo.Booking,
	resolver partyService.Resolver,
	s3Client s3.S3,
	kafkaClient kafka.Client,
	ot otel.Otel,
) Refund {
	return &serviceImpl{
		cfg:         cfg,
		repo:        repo,
		bookingRepo: bookings,
		resolver:    resolver,
		s3:          s3Client,
		kafka:       kafkaClient,
		otel:        ot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	requesterID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return res, err
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookedScheduleID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(bookingModel.EntityName) //nolint:wrapcheck
	}

	if booking.BookerID != requesterID {
		return res, failure.Forbidden("only the booking owner may request a refund") //nolint:wrapcheck
	}

	if booking.ScheduleStatus != bookingModel.ScheduleStatusConfirmed {
		return res, failure.Conflict("refunds can only be requested for confirmed bookings") //nolint:wrapcheck
	}

	if booking.PaymentStatus != bookingModel.PaymentStatusPaid {
		return res, failure.Conflict("nothing to refund, booking was never paid") //nolint:wrapcheck
	}

	evidenceURL := constant.Empty
	if req.Evidence != nil {
		evidenceURL, err = s.uploadAttachment(ctx, req.EvidenceFile, req.Evidence)
		if err != nil {
			return res, err
		}
	}

	refund := model.RefundRequest{
		ID:               uuid.NewString(),
		BookedScheduleID: booking.ID,
		RequesterID:      requesterID,
		Amount:           booking.FinalPayment,
		Reason:           req.Reason,
		Status:           model.StatusPending,
		EvidenceURL:      evidenceURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  accountID,
			ModifiedBy: accountID,
		},
	}

	if err = s.repo.Insert(ctx, refund); err != nil {
		return res, err
	}

	s.publishEvent(ctx, eventRequested, refund)

	res.FromModel(refund)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	refund, err := s.loadRefund(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(ctx, refund); err != nil {
		return res, err
	}

	res.FromModel(refund)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetRefundsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRefunds")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	filter := gDto.FilterGroup{}

	// Back-office roles see the whole queue; customers only their own requests.
	if !backOffice(role) {
		requesterID, err := s.resolver.Resolve(ctx, accountID, role)
		if err != nil {
			return res, err
		}

		filter = shared.FilterByID(requesterID, model.FieldRequesterID, model.TableName)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count refund requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, fmt.Errorf("failed to get refund requests: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Process(ctx context.Context, id string, req dto.ProcessRefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProcessRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	refund, err := s.loadRefund(ctx, id)
	if err != nil {
		return res, err
	}

	if !refund.Status.Settleable() {
		return res, failure.Conflict(fmt.Sprintf("refund request is already %s", refund.Status)) //nolint:wrapcheck
	}

	if req.Proof == nil {
		return res, failure.BadRequestFromString("transfer proof is required to complete a refund") //nolint:wrapcheck
	}

	proofURL, err := s.uploadAttachment(ctx, req.ProofFile, req.Proof)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	settled, err := s.repo.Settle(ctx, refund.ID, model.StatusCompleted, map[string]any{
		model.FieldProofURL:    proofURL,
		model.FieldProcessedBy: accountID,
		model.FieldProcessedAt: now,
	})
	if err != nil {
		return res, err
	}

	if !settled {
		return res, failure.Conflict("refund request was settled by another processor") //nolint:wrapcheck
	}

	refund.Status = model.StatusCompleted
	refund.ProofURL = proofURL
	refund.ProcessedBy = accountID
	refund.ProcessedAt = &now

	s.publishEvent(ctx, eventCompleted, refund)

	res.FromModel(refund)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectRefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RejectRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	refund, err := s.loadRefund(ctx, id)
	if err != nil {
		return res, err
	}

	if !refund.Status.Settleable() {
		return res, failure.Conflict(fmt.Sprintf("refund request is already %s", refund.Status)) //nolint:wrapcheck
	}

	if strings.TrimSpace(req.Reason) == constant.Empty {
		return res, failure.BadRequestFromString("a reason is required to reject a refund") //nolint:wrapcheck
	}

	now := timezone.Now()

	settled, err := s.repo.Settle(ctx, refund.ID, model.StatusRejected, map[string]any{
		model.FieldRejectionReason: req.Reason,
		model.FieldProcessedBy:     accountID,
		model.FieldProcessedAt:     now,
	})
	if err != nil {
		return res, err
	}

	if !settled {
		return res, failure.Conflict("refund request was settled by another processor") //nolint:wrapcheck
	}

	refund.Status = model.StatusRejected
	refund.RejectionReason = req.Reason
	refund.ProcessedBy = accountID
	refund.ProcessedAt = &now

	s.publishEvent(ctx, eventRejected, refund)

	res.FromModel(refund)

	return res, nil
}

func (s *serviceImpl) loadRefund(ctx context.Context, id string) (model.RefundRequest, error) {
	refund, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return refund, fmt.Errorf("failed to load refund request: %w", err)
	}

	if refund.ID == constant.Empty {
		return refund, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	return refund, nil
}

func (s *serviceImpl) authorizeRead(ctx context.Context, refund model.RefundRequest) error {
	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if backOffice(role) {
		return nil
	}

	requesterID, err := s.resolver.Resolve(ctx, accountID, role)
	if err != nil {
		return err
	}

	if refund.RequesterID != requesterID {
		return failure.Forbidden("refund request belongs to another party") //nolint:wrapcheck
	}

	return nil
}

func backOffice(role string) bool {
	switch role {
	case constant.RoleAccountant, constant.RoleAdmin, constant.RoleSuperAdmin:
		return true
	}

	return false
}

func (s *serviceImpl) uploadAttachment(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	filename := uuid.NewString()

	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload refund attachment")

		return constant.Empty, fmt.Errorf("failed to upload attachment: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, refund model.RefundRequest) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key: refund.BookedScheduleID,
			Value: refundEvent{
				Event:            event,
				RefundID:         refund.ID,
				BookedScheduleID: refund.BookedScheduleID,
				Status:           refund.Status.String(),
				Amount:           refund.Amount,
				OccurredAt:       time.Now(),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.RefundEvents, msg); err != nil {
			log.Error().Err(err).Str("event", event).Str("refundID", refund.ID).Msg("failed to publish refund event")
		}
	}()
}
