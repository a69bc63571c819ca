package router

import (
	"velvet/config"
	"velvet/internal/handlers/account"
	"velvet/internal/handlers/auth"
	"velvet/internal/handlers/booking"
	"velvet/internal/handlers/payment"
	"velvet/internal/handlers/refund"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Account account.Handler
	Booking booking.Handler
	Payment payment.Handler
	Refund  refund.Handler
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Account.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Refund.Router(routerGroup)
	})

	if r.Config.App.Swagger {
		router.Get("/swagger/*", httpSwagger.WrapHandler)
	}
}

func New(cfg *config.Config, domainHandlers DomainHandlers) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
	}
}
