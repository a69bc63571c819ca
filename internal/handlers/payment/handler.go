package payment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"velvet/infras/otel"
	"velvet/infras/payment"
	"velvet/internal/domains/booking/service"
	"velvet/shared/constant"
	"velvet/shared/failure"
	"velvet/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// The webhook route is deliberately outside the auth middleware chain. The
// gateway authenticates itself through the payload signature instead of a
// bearer token.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/webhook", handler.HandleWebhook)
	})
}

// HandleWebhook receives the gateway's payment status callback.
// @Summary Handle a payment webhook
// @Description Receive and verify the payment gateway's status callback.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body payment.WebhookPayload true "Webhook payload"
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) HandleWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleWebhook")
	defer scope.End()

	var payload payment.WebhookPayload
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	if err := handler.service.HandlePaymentWebhook(ctx, payload); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("orderRef", payload.OrderRef).Msg("failed to process payment webhook")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment webhook processed for order " + payload.OrderRef)

	response.WithMessage(writer, http.StatusOK, "Webhook processed")
}
