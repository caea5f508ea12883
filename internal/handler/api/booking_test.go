//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"stayhub/internal/domain/booking"
	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	"stayhub/tests/common/httptest"
	"stayhub/tests/common/testutil"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockBookings  *commandsmock.MockBookingCommands
	mockLifecycle *commandsmock.MockLifecycleCommands
	mockCoupons   *commandsmock.MockCouponCommands
	mockQueries   *queriesmock.MockBookingQueries
	handler       *api.BookingHandler
	actorID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockLifecycle = commandsmock.NewMockLifecycleCommands(s.mockCtrl)
	s.mockCoupons = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockBookings, s.mockLifecycle, s.mockCoupons, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", booking.Actor{ID: s.actorID, Role: booking.RoleGuest})
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListMyBookings)
	s.router.GET("/bookings/:code", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:code/confirm", authMiddleware, s.handler.Confirm)
	s.router.POST("/bookings/:code/cancel", authMiddleware, s.handler.Cancel)
	s.router.POST("/bookings/:code/reject", authMiddleware, s.handler.Reject)
	s.router.POST("/bookings/:code/coupons", authMiddleware, s.handler.AttachCoupon)
	s.router.DELETE("/bookings/:code/coupons/:coupon", authMiddleware, s.handler.DetachCoupon)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildView()

	validationCases := []testCaseBooking{
		{name: "adults boundary OK (1)", mutate: testutil.Field("adults", 1), expectCode: http.StatusCreated},
		{name: "adults boundary OK (16)", mutate: testutil.Field("adults", 16), expectCode: http.StatusCreated},
		{name: "adults boundary invalid (0)", mutate: testutil.Field("adults", 0), expectCode: http.StatusBadRequest},
		{name: "adults boundary invalid (17)", mutate: testutil.Field("adults", 17), expectCode: http.StatusBadRequest},
		{name: "children boundary invalid (17)", mutate: testutil.Field("children", 17), expectCode: http.StatusBadRequest},
		{name: "missing field: listing_id (required)", mutate: testutil.Field("listing_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: check_in (required)", mutate: testutil.Field("check_in", nil), expectCode: http.StatusBadRequest},
		{name: "malformed date", mutate: testutil.Field("check_in", "2026-3-10"), expectCode: http.StatusBadRequest},
		{name: "date with time suffix", mutate: testutil.Field("check_out", "2026-03-13T00:00:00Z"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(returnView.Code, resp.Code)
		s.Equal(returnView.TotalCents, resp.TotalCents)
	})

	s.Run("validation boundaries", func() {
		for _, tc := range validationCases {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
						Return(returnView, nil).Times(1)
				}
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 409 when dates conflict", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
			Return(nil, commands.ErrDateRangeConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Dates are not available")
	})

	s.Run("error: 422 when party too large for listing", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
			Return(nil, commands.ErrTooManyGuests).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("error: 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.Code

	s.Run("success: returns 200 OK", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(returnView.Code, resp.Code)
	})

	s.Run("error: 403 for another guest's booking", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(nil, queries.ErrViewForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 404 for unknown code", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestLifecycleEndpoints
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirm() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.Code + "/confirm"

	s.Run("success: returns the refreshed booking", func() {
		s.mockLifecycle.EXPECT().Confirm(gomock.Any(), returnView.Code, gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(returnView.Code, resp.Code)
	})

	s.Run("error: 403 when the actor lacks the capability", func() {
		s.mockLifecycle.EXPECT().Confirm(gomock.Any(), returnView.Code, gomock.Any()).
			Return(commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 409 when the booking changed concurrently", func() {
		s.mockLifecycle.EXPECT().Confirm(gomock.Any(), returnView.Code, gomock.Any()).
			Return(commands.ErrTransitionConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 409 for an impossible transition", func() {
		s.mockLifecycle.EXPECT().Confirm(gomock.Any(), returnView.Code, gomock.Any()).
			Return(booking.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid state")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.Code + "/cancel"

	s.Run("success: cancel without a body", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), returnView.Code, gomock.Any(), "").
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("success: cancel with a reason", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), returnView.Code, gomock.Any(), "change of plans").
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "change of plans"}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("error: 422 when the reason never reaches the domain", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), returnView.Code, gomock.Any(), "").
			Return(booking.ErrEmptyReason).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "reason")
	})
}

func (s *BookingHandlerTestSuite) TestReject() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.Code + "/reject"

	s.Run("success: rejection with a long enough reason", func() {
		s.mockLifecycle.EXPECT().Reject(gomock.Any(), returnView.Code, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), gomock.Any(), returnView.Code).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "the unit is under renovation"}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("error: 400 when the reason is too short", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "nope"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 when the reason is too long", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": strings.Repeat("a", 501)}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestCoupons
// ================================================================================

func (s *BookingHandlerTestSuite) TestAttachCoupon() {
	returnView := builder.NewBookingBuilder().BuildView()
	returnView.DiscountCents = 730_000
	url := "/bookings/" + returnView.Code + "/coupons"

	s.Run("success: returns the repriced booking", func() {
		s.mockCoupons.EXPECT().Attach(gomock.Any(), returnView.Code, "SPRING20", gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_code": "SPRING20"}, "bearer-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(730_000), resp.DiscountCents)
	})

	s.Run("error: 400 for a too-short code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_code": "ab"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 422 when the coupon is rejected", func() {
		s.mockCoupons.EXPECT().Attach(gomock.Any(), returnView.Code, "SPRING20", gomock.Any()).
			Return(nil, commands.ErrCouponRejected).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_code": "SPRING20"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Coupon cannot be applied")
	})

	s.Run("error: 409 when already attached", func() {
		s.mockCoupons.EXPECT().Attach(gomock.Any(), returnView.Code, "SPRING20", gomock.Any()).
			Return(nil, commands.ErrCouponAlreadyAttached).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"coupon_code": "SPRING20"}, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestDetachCoupon() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.Code + "/coupons/SPRING20"

	s.Run("success: returns the restored booking", func() {
		s.mockCoupons.EXPECT().Detach(gomock.Any(), returnView.Code, "SPRING20", gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("error: 404 when the coupon was never attached", func() {
		s.mockCoupons.EXPECT().Detach(gomock.Any(), returnView.Code, "SPRING20", gomock.Any()).
			Return(nil, commands.ErrCouponNotAttached).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
