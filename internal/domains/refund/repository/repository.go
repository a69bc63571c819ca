package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/refund/model"
	"velvet/shared/constant"
	gDto "velvet/shared/dto"
	"velvet/shared/failure"
	"velvet/shared/logger"
	gRepo "velvet/shared/repository"
)

type Refund interface {
	Insert(ctx context.Context, refund model.RefundRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RefundRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RefundRequest, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	// Settle moves a still-open request to a terminal status and reports
	// whether the row actually changed. A false return means the request was
	// already settled by another processor.
	Settle(ctx context.Context, id string, to model.Status, extra map[string]any) (bool, error)
}

type refundImpl struct {
	gRepo.Repository[model.RefundRequest]
	db *postgres.Connection
}

func New(db *postgres.Connection, otel otel.Otel) Refund {
	return &refundImpl{
		Repository: gRepo.NewRepository[model.RefundRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
	}
}

// Insert relies on the partial unique index over booked_schedule_id to keep at
// most one active request per booking. The index violation is the dedup
// signal; concurrent creates race at the database, not in application code.
func (repo *refundImpl) Insert(ctx context.Context, refund model.RefundRequest) error {
	err := repo.Repository.Insert(ctx, refund)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("an active refund request already exists for this booking") //nolint:wrapcheck
		}

		return err
	}

	return nil
}

func (repo *refundImpl) Settle(ctx context.Context, id string, to model.Status, extra map[string]any) (bool, error) {
	sets := []string{"status = :to", "modified_at = :modified_at"}
	args := map[string]any{
		"id":          id,
		"to":          to,
		"pending":     model.StatusPending,
		"processing":  model.StatusProcessing,
		"modified_at": time.Now(),
	}

	for col, val := range extra {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
		args[col] = val
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = :id AND status IN (:pending, :processing)",
		model.TableName,
		strings.Join(sets, ", "),
	)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to settle refund request (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
