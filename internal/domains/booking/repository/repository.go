package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/booking/model"
	gDto "velvet/shared/dto"
	"velvet/shared/logger"
	gRepo "velvet/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, booking model.BookedSchedule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookedSchedule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookedSchedule, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error

	// UpdateStatusIf moves a booking from one schedule status to another and
	// reports whether the row actually changed. A false return means another
	// writer got there first or the booking was not in the expected status.
	UpdateStatusIf(ctx context.Context, id string, from, to model.ScheduleStatus, extra map[string]any) (bool, error)
	// MarkPaid flips payment_status from pending to paid exactly once.
	MarkPaid(ctx context.Context, id string) (bool, error)
	// GetPendingByVenueAndDate lists the other pending bookings a venue holds
	// for one date, excluding the booking that just won the slot.
	GetPendingByVenueAndDate(ctx context.Context, receiverID, excludeID string, bookingDate time.Time) ([]model.BookedSchedule, error)
	// GetAutoCompletable lists confirmed paid bookings whose end time passed
	// the completion cutoff.
	GetAutoCompletable(ctx context.Context, cutoff time.Time) ([]model.BookedSchedule, error)
	// GetStaleUnpaid lists pending unpaid bookings created before the cutoff.
	GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]model.BookedSchedule, error)
}

type bookingImpl struct {
	gRepo.Repository[model.BookedSchedule]
	db *postgres.Connection
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &bookingImpl{
		Repository: gRepo.NewRepository[model.BookedSchedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
	}
}

func (repo *bookingImpl) UpdateStatusIf(ctx context.Context, id string, from, to model.ScheduleStatus, extra map[string]any) (bool, error) {
	sets := []string{"schedule_status = :to", "modified_at = :modified_at"}
	args := map[string]any{
		"id":          id,
		"from":        from,
		"to":          to,
		"modified_at": time.Now(),
	}

	for col, val := range extra {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
		args[col] = val
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = :id AND schedule_status = :from",
		model.TableName,
		strings.Join(sets, ", "),
	)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update status (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

func (repo *bookingImpl) MarkPaid(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET payment_status = :paid, modified_at = :modified_at WHERE id = :id AND payment_status = :pending",
		model.TableName,
	)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"paid":        model.PaymentStatusPaid,
		"pending":     model.PaymentStatusPending,
		"modified_at": time.Now(),
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to mark paid (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

func (repo *bookingImpl) GetPendingByVenueAndDate(ctx context.Context, receiverID, excludeID string, bookingDate time.Time) ([]model.BookedSchedule, error) {
	query := fmt.Sprintf(
		`SELECT * FROM %s
		WHERE receiver_id = :receiver_id
		AND id != :exclude_id
		AND schedule_status = :pending
		AND booking_date = :booking_date`,
		model.TableName,
	)

	return repo.selectNamed(ctx, query, map[string]any{
		"receiver_id":  receiverID,
		"exclude_id":   excludeID,
		"pending":      model.ScheduleStatusPending,
		"booking_date": bookingDate,
	})
}

func (repo *bookingImpl) GetAutoCompletable(ctx context.Context, cutoff time.Time) ([]model.BookedSchedule, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE schedule_status = :confirmed AND payment_status = :paid AND end_time <= :cutoff",
		model.TableName,
	)

	return repo.selectNamed(ctx, query, map[string]any{
		"confirmed": model.ScheduleStatusConfirmed,
		"paid":      model.PaymentStatusPaid,
		"cutoff":    cutoff,
	})
}

func (repo *bookingImpl) GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]model.BookedSchedule, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE schedule_status = :pending AND payment_status = :unpaid AND created_at <= :cutoff",
		model.TableName,
	)

	return repo.selectNamed(ctx, query, map[string]any{
		"pending": model.ScheduleStatusPending,
		"unpaid":  model.PaymentStatusPending,
		"cutoff":  cutoff,
	})
}

func (repo *bookingImpl) selectNamed(ctx context.Context, query string, args map[string]any) ([]model.BookedSchedule, error) {
	namedQuery, namedArgs, err := repo.db.Read.BindNamed(query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to bind query (%s): %w", model.EntityName, err)
	}

	var result []model.BookedSchedule
	if err := repo.db.Read.SelectContext(ctx, &result, namedQuery, namedArgs...); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to select (%s): %w", model.EntityName, err)
	}

	return result, nil
}
