package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/venue/model"
	gDto "velvet/shared/dto"
	"velvet/shared/logger"
	gRepo "velvet/shared/repository"
)

type Venue interface {
	Insert(ctx context.Context, model model.Venue) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Venue, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type Combo interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Combo, error)
}

type Voucher interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Voucher, error)
	// ConsumeUsage bumps the redemption counter, guarded by the usage cap so two
	// concurrent redemptions cannot both take the last slot.
	ConsumeUsage(ctx context.Context, id string) (bool, error)
	ReleaseUsage(ctx context.Context, id string) error
}

type VenueTable interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.VenueTable, error)
}

type venueImpl struct {
	gRepo.Repository[model.Venue]
}

type comboImpl struct {
	gRepo.Repository[model.Combo]
}

type voucherImpl struct {
	gRepo.Repository[model.Voucher]
	db *postgres.Connection
}

type venueTableImpl struct {
	gRepo.Repository[model.VenueTable]
}

func NewVenue(db *postgres.Connection, otel otel.Otel) Venue {
	return &venueImpl{
		Repository: gRepo.NewRepository[model.Venue](model.VenueEntityName, model.VenueTableName, model.FieldID, db, otel),
	}
}

func NewCombo(db *postgres.Connection, otel otel.Otel) Combo {
	return &comboImpl{
		Repository: gRepo.NewRepository[model.Combo](model.ComboEntityName, model.ComboTableName, model.FieldID, db, otel),
	}
}

func NewVoucher(db *postgres.Connection, otel otel.Otel) Voucher {
	return &voucherImpl{
		Repository: gRepo.NewRepository[model.Voucher](model.VoucherEntityName, model.VoucherTableName, model.FieldID, db, otel),
		db:         db,
	}
}

func NewVenueTable(db *postgres.Connection, otel otel.Otel) VenueTable {
	return &venueTableImpl{
		Repository: gRepo.NewRepository[model.VenueTable](model.TableEntityName, model.TableTableName, model.FieldID, db, otel),
	}
}

func (repo *voucherImpl) ConsumeUsage(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET used_count = used_count + 1 WHERE id = :id AND (usage_limit = 0 OR used_count < usage_limit)",
		model.VoucherTableName,
	)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{"id": id})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to consume voucher usage (%s): %w", model.VoucherEntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.VoucherEntityName, err)
	}

	return affected > 0, nil
}

// ReleaseUsage returns a redemption taken by ConsumeUsage when the booking it
// was consumed for never materialized.
func (repo *voucherImpl) ReleaseUsage(ctx context.Context, id string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET used_count = used_count - 1 WHERE id = :id AND used_count > 0",
		model.VoucherTableName,
	)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{"id": id}); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to release voucher usage (%s): %w", model.VoucherEntityName, err)
	}

	return nil
}
