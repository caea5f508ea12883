package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stayhub/internal/domain/booking"
	"stayhub/internal/handler/api"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	calendarHandler *api.CalendarHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, calendarHandler, paymentHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	calendarHandler *api.CalendarHandler,
	paymentHandler *api.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	hostOnly := authMiddleware.RequireRole(booking.RoleHost, booking.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		// Gateway callbacks carry no bearer token; the gateway transaction
		// id is the only credential they have.
		addRoutes(apiGroup.Group("/payments"), []route{
			{Method: http.MethodGet, Path: "/callback/:provider", Handler: paymentHandler.GatewayCallback},
			{Method: http.MethodPost, Path: "/callback/:provider", Handler: paymentHandler.GatewayCallback},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMyBookings},
				{Method: http.MethodGet, Path: "/:code", Handler: bookingHandler.GetBooking},
				{Method: http.MethodGet, Path: "/:code/payments", Handler: bookingHandler.ListPayments},

				{Method: http.MethodPost, Path: "/:code/confirm", Handler: bookingHandler.Confirm, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:code/reject", Handler: bookingHandler.Reject, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:code/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodPost, Path: "/:code/checkin", Handler: bookingHandler.CheckIn, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:code/checkout", Handler: bookingHandler.CheckOut, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:code/complete", Handler: bookingHandler.Complete, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:code/no-show", Handler: bookingHandler.MarkNoShow, Mw: []gin.HandlerFunc{hostOnly}},

				{Method: http.MethodPost, Path: "/:code/coupons", Handler: bookingHandler.AttachCoupon},
				{Method: http.MethodDelete, Path: "/:code/coupons/:coupon", Handler: bookingHandler.DetachCoupon},

				{Method: http.MethodPost, Path: "/:code/payments", Handler: paymentHandler.Initiate},
				{Method: http.MethodPost, Path: "/:code/payments/manual", Handler: paymentHandler.RecordManual, Mw: []gin.HandlerFunc{hostOnly}},
			})
		}

		listings := apiGroup.Group("/listings")
		{
			// Calendar and availability reads are public; quote needs a
			// guest identity for per-user coupon limits.
			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "/:id/calendar", Handler: calendarHandler.ListDays},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: calendarHandler.CheckRange},
			})

			authed := listings.Group("")
			authed.Use(authMiddleware.RequireAuth())
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "/:id/quote", Handler: calendarHandler.Quote},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: bookingHandler.ListListingBookings, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPut, Path: "/:id/calendar", Handler: calendarHandler.UpsertDays, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodDelete, Path: "/:id/calendar", Handler: calendarHandler.RemoveDays, Mw: []gin.HandlerFunc{hostOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
