package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"velvet/infras/otel"
	"velvet/infras/postgres"
	"velvet/internal/domains/party/model"
	gDto "velvet/shared/dto"
	gRepo "velvet/shared/repository"
)

type Customer interface {
	Insert(ctx context.Context, model model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
}

type Staff interface {
	Insert(ctx context.Context, model model.Staff) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Staff, error)
}

type customerImpl struct {
	gRepo.Repository[model.Customer]
}

type staffImpl struct {
	gRepo.Repository[model.Staff]
}

func NewCustomer(db *postgres.Connection, otel otel.Otel) Customer {
	return &customerImpl{
		Repository: gRepo.NewRepository[model.Customer](model.CustomerEntityName, model.CustomerTableName, model.FieldID, db, otel),
	}
}

func NewStaff(db *postgres.Connection, otel otel.Otel) Staff {
	return &staffImpl{
		Repository: gRepo.NewRepository[model.Staff](model.StaffEntityName, model.StaffTableName, model.FieldID, db, otel),
	}
}
