// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"velvet/config"
	"velvet/infras/jwt"
	"velvet/infras/kafka"
	"velvet/infras/otel"
	"velvet/infras/payment"
	"velvet/infras/postgres"
	"velvet/infras/redis"
	"velvet/infras/s3"
	"velvet/internal/domains/account/repository"
	"velvet/internal/domains/account/service"
	service2 "velvet/internal/domains/auth/service"
	"velvet/internal/domains/booking/qrtoken"
	repository4 "velvet/internal/domains/booking/repository"
	service4 "velvet/internal/domains/booking/service"
	"velvet/internal/domains/booking/snapshot"
	repository2 "velvet/internal/domains/party/repository"
	service3 "velvet/internal/domains/party/service"
	repository5 "velvet/internal/domains/refund/repository"
	service5 "velvet/internal/domains/refund/service"
	repository3 "velvet/internal/domains/venue/repository"
	"velvet/internal/handlers/account"
	"velvet/internal/handlers/auth"
	"velvet/internal/handlers/booking"
	payment2 "velvet/internal/handlers/payment"
	"velvet/internal/handlers/refund"
	"velvet/internal/job"
	"velvet/permissions"
	"velvet/shared/cache"
	"velvet/transport/http"
	"velvet/transport/http/middleware"
	"velvet/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryAccount := repository.New(connection, otelOtel)
	customer := repository2.NewCustomer(connection, otelOtel)
	staff := repository2.NewStaff(connection, otelOtel)
	venue := repository3.NewVenue(connection, otelOtel)
	redisConnection := redis.New(configConfig)
	redisCache := cache.NewRedisCache(redisConnection, otelOtel)
	serviceAccount := service.New(repositoryAccount, customer, staff, venue, configConfig, redisCache, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service2.New(repositoryAccount, serviceAccount, configConfig, otelOtel, jwtJWT)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	handler := auth.New(serviceAuth, authRole, otelOtel)
	accountHandler := account.New(serviceAccount, authRole, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	combo := repository3.NewCombo(connection, otelOtel)
	venueTable := repository3.NewVenueTable(connection, otelOtel)
	voucher := repository3.NewVoucher(connection, otelOtel)
	resolver := service3.NewResolver(customer, staff, venue, otelOtel)
	store := snapshot.NewStore(redisConnection, otelOtel)
	qrtokenService := qrtoken.New(configConfig)
	gateway := payment.New(configConfig, otelOtel)
	client := kafka.New(configConfig)
	serviceBooking := service4.New(configConfig, repositoryBooking, venue, combo, venueTable, voucher, resolver, store, qrtokenService, gateway, redisCache, client, otelOtel)
	bookingHandler := booking.New(serviceBooking, authRole, otelOtel)
	paymentHandler := payment2.New(serviceBooking, otelOtel)
	repositoryRefund := repository5.New(connection, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceRefund := service5.New(configConfig, repositoryRefund, repositoryBooking, resolver, s3S3, client, otelOtel)
	refundHandler := refund.New(serviceRefund, authRole, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:    handler,
		Account: accountHandler,
		Booking: bookingHandler,
		Payment: paymentHandler,
		Refund:  refundHandler,
	}
	routerRouter := router.New(configConfig, domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP
}

func InitializeSweeper() *job.Sweeper {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryBooking := repository4.New(connection, otelOtel)
	venue := repository3.NewVenue(connection, otelOtel)
	combo := repository3.NewCombo(connection, otelOtel)
	venueTable := repository3.NewVenueTable(connection, otelOtel)
	voucher := repository3.NewVoucher(connection, otelOtel)
	customer := repository2.NewCustomer(connection, otelOtel)
	staff := repository2.NewStaff(connection, otelOtel)
	resolver := service3.NewResolver(customer, staff, venue, otelOtel)
	redisConnection := redis.New(configConfig)
	store := snapshot.NewStore(redisConnection, otelOtel)
	qrtokenService := qrtoken.New(configConfig)
	gateway := payment.New(configConfig, otelOtel)
	redisCache := cache.NewRedisCache(redisConnection, otelOtel)
	client := kafka.New(configConfig)
	serviceBooking := service4.New(configConfig, repositoryBooking, venue, combo, venueTable, voucher, resolver, store, qrtokenService, gateway, redisCache, client, otelOtel)
	sweeper := job.NewSweeper(configConfig, serviceBooking, redisCache, otelOtel)
	return sweeper
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New, s3.New, payment.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var accountDomain = wire.NewSet(repository.New, service.New, service2.New)

var partyDomain = wire.NewSet(repository2.NewCustomer, repository2.NewStaff, service3.NewResolver)

var venueDomain = wire.NewSet(repository3.NewVenue, repository3.NewCombo, repository3.NewVoucher, repository3.NewVenueTable)

var bookingDomain = wire.NewSet(repository4.New, snapshot.NewStore, qrtoken.New, service4.New)

var refundDomain = wire.NewSet(repository5.New, service5.New)

var domains = wire.NewSet(
	accountDomain,
	partyDomain,
	venueDomain,
	bookingDomain,
	refundDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, account.New, booking.New, payment2.New, refund.New, router.New)
