package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const calendarDateLayout = "2006-01-02"

type CalendarHandler struct {
	calendar     commands.CalendarCommands
	availability queries.AvailabilityQueries
}

func NewCalendarHandler(
	calendar commands.CalendarCommands,
	availability queries.AvailabilityQueries,
) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, availability: availability}
}

// @Summary Upsert calendar days
// @Description Host edits to a listing's calendar: open/close days, blocks, price overrides
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.CalendarUpsertRequest true "Day edits"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /listings/{id}/calendar [put]
func (h *CalendarHandler) UpsertDays(c *gin.Context) {
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

	var req reqdto.CalendarUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	edits, err := req.ToEdits()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	if err := h.calendar.UpsertDays(c.Request.Context(), listingID, actor, edits); err != nil {
		writeCalendarError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Remove calendar days
// @Description Drop day overrides, reverting those dates to listing defaults
// @Tags calendar
// @Accept json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.CalendarRemoveRequest true "Dates to remove"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Router /listings/{id}/calendar [delete]
func (h *CalendarHandler) RemoveDays(c *gin.Context) {
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

	var req reqdto.CalendarRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	dates, err := req.ToDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	if err := h.calendar.RemoveDays(c.Request.Context(), listingID, actor, dates); err != nil {
		writeCalendarError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List calendar days
// @Tags calendar
// @Produce json
// @Param id path string true "Listing ID"
// @Param from query string true "Range start (inclusive), YYYY-MM-DD"
// @Param to query string true "Range end (exclusive), YYYY-MM-DD"
// @Success 200 {array} resdto.AvailabilityDayResponse
// @Router /listings/{id}/calendar [get]
func (h *CalendarHandler) ListDays(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	from, to, err := dateRangeQuery(c, "from", "to")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
		return
	}

	days, err := h.availability.ListDays(c.Request.Context(), listingID, from, to)
	if err != nil {
		writeCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityDays(days))
}

// @Summary Check range availability
// @Description Advisory check whether a stay can currently be booked
// @Tags calendar
// @Produce json
// @Param id path string true "Listing ID"
// @Param check_in query string true "Check-in date, YYYY-MM-DD"
// @Param check_out query string true "Check-out date, YYYY-MM-DD"
// @Success 200 {object} resdto.RangeCheckResponse
// @Router /listings/{id}/availability [get]
func (h *CalendarHandler) CheckRange(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	checkIn, checkOut, err := dateRangeQuery(c, "check_in", "check_out")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
		return
	}

	view, err := h.availability.CheckRange(c.Request.Context(), listingID, checkIn, checkOut)
	if err != nil {
		writeCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRangeCheck(view))
}

// @Summary Quote a stay
// @Description Price a stay, optionally with a coupon, without holding anything
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.QuoteRequest true "Stay to price"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /listings/{id}/quote [post]
func (h *CalendarHandler) Quote(c *gin.Context) {
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

	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	input, err := req.ToInput(listingID, actor.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format", nil)
		return
	}

	view, err := h.availability.Quote(c.Request.Context(), input)
	if err != nil {
		writeCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

func dateRangeQuery(c *gin.Context, fromKey, toKey string) (time.Time, time.Time, error) {
	from, err := time.Parse(calendarDateLayout, c.Query(fromKey))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(calendarDateLayout, c.Query(toKey))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func writeCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Listing not found", nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errors.Is(err, commands.ErrEmptyCalendarEdit):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "No days to edit", nil)
	case errors.Is(err, commands.ErrInvalidBlockReason):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid block reason", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	case errors.Is(err, queries.ErrInvalidRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
	case errors.Is(err, queries.ErrQuoteCoupon):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Coupon cannot be applied", nil)
	case errors.Is(err, commands.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
