package api

import (
	"errors"
	"net/http"
	"net/url"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments commands.PaymentCommands
	gateways *gateway.Registry
}

func NewPaymentHandler(payments commands.PaymentCommands, gateways *gateway.Registry) *PaymentHandler {
	return &PaymentHandler{payments: payments, gateways: gateways}
}

// @Summary Initiate online payment
// @Description Open a pending payment for the booking's outstanding amount
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Param request body reqdto.InitiatePaymentRequest true "Payment method"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{code}/payments [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	var req reqdto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.payments.InitiatePayment(c.Request.Context(), c.Param("code"), actor, req.Method)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentView(view))
}

// @Summary Record manual payment
// @Description Host or admin records money taken outside any gateway
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Param request body reqdto.ManualPaymentRequest true "Manual payment"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{code}/payments/manual [post]
func (h *PaymentHandler) RecordManual(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	var req reqdto.ManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.payments.RecordManualPayment(c.Request.Context(), c.Param("code"), actor, req.Method, req.AmountCents)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentView(view))
}

// @Summary Gateway payment callback
// @Description Provider-initiated settlement notification; idempotent by gateway transaction id
// @Tags payments
// @Produce json
// @Param provider path string true "Gateway provider (vnpay, momo)"
// @Success 200 {object} resdto.ReconciliationResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/callback/{provider} [get]
func (h *PaymentHandler) GatewayCallback(c *gin.Context) {
	values := h.callbackValues(c)

	ev, err := h.gateways.Parse(c.Param("provider"), values)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	result, err := h.payments.ApplyGatewayEvent(c.Request.Context(), ev)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReconciliationResult(result))
}

// VNPay redirects with query parameters; Momo IPN posts a form body.
func (h *PaymentHandler) callbackValues(c *gin.Context) url.Values {
	values := c.Request.URL.Query()
	if len(values) > 0 {
		return values
	}
	if err := c.Request.ParseForm(); err == nil {
		return c.Request.PostForm
	}
	return values
}

func writeGatewayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gateway.ErrUnknownProvider):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown payment provider", nil)
	case errors.Is(err, gateway.ErrMalformedCallback):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed gateway callback", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrUnknownTransaction):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown gateway transaction", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errors.Is(err, commands.ErrAmountMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Settled amount does not match", nil)
	case errors.Is(err, commands.ErrNotOnlineMethod):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Method is not an online gateway", nil)
	case errors.Is(err, commands.ErrNotManualMethod):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Method is not a manual settlement", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	case errors.Is(err, commands.ErrHoldLapsed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Payment hold has lapsed", nil)
	case errors.Is(err, commands.ErrNothingToPay):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is already fully paid", nil)
	case errors.Is(err, commands.ErrTransitionConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking changed concurrently, retry", nil)
	case errors.Is(err, booking.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid state for this action", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
