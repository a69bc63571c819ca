package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"velvet/infras/otel"
	partyModel "velvet/internal/domains/party/model"
	partyRepo "velvet/internal/domains/party/repository"
	venueModel "velvet/internal/domains/venue/model"
	venueRepo "velvet/internal/domains/venue/repository"
	"velvet/shared"
	"velvet/shared/constant"
	"velvet/shared/failure"
)

// Resolver maps an authenticated account to its role-scoped party id. Booking
// records store party ids, never raw account ids, so the mapping is done once
// at the operation boundary and never re-derived.
type Resolver interface {
	Resolve(ctx context.Context, accountID, role string) (string, error)
	// ResolveVenue maps venue-side actors to the venue they act for. Venue
	// accounts map to their own venue, staff accounts to their employer.
	ResolveVenue(ctx context.Context, accountID, role string) (string, error)
}

type resolverImpl struct {
	customerRepo partyRepo.Customer
	staffRepo    partyRepo.Staff
	venueRepo    venueRepo.Venue
	otel         otel.Otel
}

func NewResolver(customerRepo partyRepo.Customer, staffRepo partyRepo.Staff, venueRepo venueRepo.Venue, otel otel.Otel) Resolver {
	return &resolverImpl{
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		venueRepo:    venueRepo,
		otel:         otel,
	}
}

func (s *resolverImpl) Resolve(ctx context.Context, accountID, role string) (partyID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if accountID == constant.Empty {
		return constant.Empty, failure.Unauthorized("missing account identity") //nolint:wrapcheck
	}

	switch role {
	case constant.RoleCustomer:
		filter := shared.FilterByID(accountID, partyModel.FieldAccountID, partyModel.CustomerTableName)

		customer, err := s.customerRepo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve customer party")

			return constant.Empty, fmt.Errorf("failed to resolve customer party: %w", err)
		}

		if customer.ID == constant.Empty {
			return constant.Empty, failure.NotFound("customer identity not found") //nolint:wrapcheck
		}

		return customer.ID, nil
	case constant.RoleVenue:
		filter := shared.FilterByID(accountID, partyModel.FieldAccountID, venueModel.VenueTableName)

		venue, err := s.venueRepo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve venue party")

			return constant.Empty, fmt.Errorf("failed to resolve venue party: %w", err)
		}

		if venue.ID == constant.Empty {
			return constant.Empty, failure.NotFound("venue identity not found") //nolint:wrapcheck
		}

		return venue.ID, nil
	case constant.RoleStaff:
		filter := shared.FilterByID(accountID, partyModel.FieldAccountID, partyModel.StaffTableName)

		staff, err := s.staffRepo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve staff party")

			return constant.Empty, fmt.Errorf("failed to resolve staff party: %w", err)
		}

		if staff.ID == constant.Empty {
			return constant.Empty, failure.NotFound("staff identity not found") //nolint:wrapcheck
		}

		return staff.ID, nil
	}

	return constant.Empty, failure.BadRequestFromString("unknown party role: " + role) //nolint:wrapcheck
}

func (s *resolverImpl) ResolveVenue(ctx context.Context, accountID, role string) (venueID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveVenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if accountID == constant.Empty {
		return constant.Empty, failure.Unauthorized("missing account identity") //nolint:wrapcheck
	}

	switch role {
	case constant.RoleVenue:
		return s.Resolve(ctx, accountID, role)
	case constant.RoleStaff:
		filter := shared.FilterByID(accountID, partyModel.FieldAccountID, partyModel.StaffTableName)

		staff, err := s.staffRepo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve staff party")

			return constant.Empty, fmt.Errorf("failed to resolve staff party: %w", err)
		}

		if staff.ID == constant.Empty {
			return constant.Empty, failure.NotFound("staff identity not found") //nolint:wrapcheck
		}

		return staff.VenueID, nil
	}

	return constant.Empty, failure.Forbidden("venue-side role required") //nolint:wrapcheck
}
