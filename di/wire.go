//go:build wireinject
// +build wireinject

package di

import (
	"velvet/config"
	"velvet/infras/jwt"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/infras/payment"
	"velvet/infras/postgres"
	"velvet/infras/redis"
	"velvet/infras/s3"
	"velvet/internal/domains/booking/qrtoken"
	"velvet/internal/domains/booking/snapshot"
	"velvet/internal/job"
	"velvet/permissions"
	"velvet/shared/cache"
	"velvet/transport/http"
	"velvet/transport/http/middleware"
	"velvet/transport/http/router"

	accountRepository "velvet/internal/domains/account/repository"
	accountService "velvet/internal/domains/account/service"
	authService "velvet/internal/domains/auth/service"
	bookingRepository "velvet/internal/domains/booking/repository"
	bookingService "velvet/internal/domains/booking/service"
	partyRepository "velvet/internal/domains/party/repository"
	partyService "velvet/internal/domains/party/service"
	refundRepository "velvet/internal/domains/refund/repository"
	refundService "velvet/internal/domains/refund/service"
	venueRepository "velvet/internal/domains/venue/repository"

	"github.com/google/wire"

	accountHandler "velvet/internal/handlers/account"
	authHandler "velvet/internal/handlers/auth"
	bookingHandler "velvet/internal/handlers/booking"
	paymentHandler "velvet/internal/handlers/payment"
	refundHandler "velvet/internal/handlers/refund"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	payment.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var accountDomain = wire.NewSet(
	accountRepository.New,
	accountService.New,
	authService.New,
)

var partyDomain = wire.NewSet(
	partyRepository.NewCustomer,
	partyRepository.NewStaff,
	partyService.NewResolver,
)

var venueDomain = wire.NewSet(
	venueRepository.NewVenue,
	venueRepository.NewCombo,
	venueRepository.NewVoucher,
	venueRepository.NewVenueTable,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	snapshot.NewStore,
	qrtoken.New,
	bookingService.New,
)

var refundDomain = wire.NewSet(
	refundRepository.New,
	refundService.New,
)

var domains = wire.NewSet(
	accountDomain,
	partyDomain,
	venueDomain,
	bookingDomain,
	refundDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	accountHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	refundHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSweeper() *job.Sweeper {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		payment.New,
		cache.NewRedisCache,
		partyDomain,
		venueDomain,
		bookingDomain,
		wire.Bind(new(job.BookingSweeps), new(bookingService.Booking)),
		job.NewSweeper,
	)

	return &job.Sweeper{}
}
