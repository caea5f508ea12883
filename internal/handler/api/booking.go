package api

import (
	"errors"
	"net/http"
	"strconv"

	"stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings       commands.BookingCommands
	lifecycle      commands.LifecycleCommands
	coupons        commands.CouponCommands
	bookingQueries queries.BookingQueries
}

func NewBookingHandler(
	bookings commands.BookingCommands,
	lifecycle commands.LifecycleCommands,
	coupons commands.CouponCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		bookings:       bookings,
		lifecycle:      lifecycle,
		coupons:        coupons,
		bookingQueries: bookingQueries,
	}
}

// @Summary Create booking
// @Description Place a hold on a stay; the hold expires unless paid in time
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	view, err := h.bookings.CreateBooking(c.Request.Context(), input, actor.ID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by its confirmation code
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{code} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	view, err := h.bookingQueries.GetByCode(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	limit, offset := pagination(c)
	items, err := h.bookingQueries.ListByGuest(c.Request.Context(), actor.ID, limit, offset)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingListItems(items))
}

// @Summary List bookings for a listing
// @Description Host view of a listing's bookings; hosts see only their own listings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 403 {object} httperr.Response
// @Router /listings/{id}/bookings [get]
func (h *BookingHandler) ListListingBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	limit, offset := pagination(c)
	items, err := h.bookingQueries.ListByListing(c.Request.Context(), actor, listingID, limit, offset)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingListItems(items))
}

// @Summary List booking payments
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{code}/payments [get]
func (h *BookingHandler) ListPayments(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	views, err := h.bookingQueries.PaymentsForBooking(c.Request.Context(), actor, c.Param("code"))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

// Lifecycle actions. Each one drives a single transition and returns the
// refreshed booking so the client never has to re-fetch.

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{code}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.Confirm(c.Request.Context(), code, actor)
	})
}

// @Summary Reject booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Param request body reqdto.RejectBookingRequest true "Rejection reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{code}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	var req reqdto.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.Reject(c.Request.Context(), code, actor, req.Reason)
	})
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{code}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.Cancel(c.Request.Context(), code, actor, req.Reason)
	})
}

// @Summary Check in guest
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{code}/checkin [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.CheckIn(c.Request.Context(), code, actor)
	})
}

// @Summary Check out guest
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{code}/checkout [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.CheckOut(c.Request.Context(), code, actor)
	})
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{code}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.Complete(c.Request.Context(), code, actor)
	})
}

// @Summary Mark booking as no-show
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{code}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.runTransition(c, func(actor booking.Actor, code string) error {
		return h.lifecycle.MarkNoShow(c.Request.Context(), code, actor)
	})
}

// @Summary Attach coupon
// @Description Attach a coupon to a pending booking and reprice it
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Param request body reqdto.AttachCouponRequest true "Coupon code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{code}/coupons [post]
func (h *BookingHandler) AttachCoupon(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	var req reqdto.AttachCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.coupons.Attach(c.Request.Context(), c.Param("code"), req.CouponCode, actor)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Detach coupon
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Param coupon path string true "Coupon code"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{code}/coupons/{coupon} [delete]
func (h *BookingHandler) DetachCoupon(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	view, err := h.coupons.Detach(c.Request.Context(), c.Param("code"), c.Param("coupon"), actor)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) runTransition(c *gin.Context, run func(actor booking.Actor, code string) error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing actor"), "Unauthorized", nil)
		return
	}

	code := c.Param("code")
	if err := run(actor, code); err != nil {
		writeBookingError(c, err)
		return
	}

	view, err := h.bookingQueries.GetByCode(c.Request.Context(), actor, code)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func pagination(c *gin.Context) (limit, offset int32) {
	if v, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 32); err == nil {
		limit = int32(v)
	}
	if v, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32); err == nil {
		offset = int32(v)
	}
	return limit, offset
}

// writeBookingError maps usecase errors onto HTTP statuses. Anything not
// matched is a 500 so infrastructure failures never leak details.
func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errors.Is(err, commands.ErrCouponNotAttached):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not attached to this booking", nil)
	case errors.Is(err, commands.ErrForbidden), errors.Is(err, queries.ErrViewForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errors.Is(err, commands.ErrDateRangeConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Dates are not available", nil)
	case errors.Is(err, commands.ErrTransitionConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking changed concurrently, retry", nil)
	case errors.Is(err, commands.ErrCouponAlreadyAttached):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon already attached", nil)
	case errors.Is(err, booking.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid state for this action", nil)
	case errors.Is(err, commands.ErrInvalidStay):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay dates", nil)
	case errors.Is(err, commands.ErrTooManyGuests):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Guest count exceeds listing capacity", nil)
	case errors.Is(err, commands.ErrCouponRejected):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Coupon cannot be applied", nil)
	case errors.Is(err, booking.ErrEmptyReason):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "A reason is required", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	case infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
