package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/handler/api"
	"lodgekeeper/internal/handler/middleware"
	"lodgekeeper/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Room        *api.RoomHandler
	Reservation *api.ReservationHandler
	Voucher     *api.VoucherHandler
	Report      *api.ReportHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	RegisterValidators()
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Viewers get read access; writes require operator or admin
	requireOperator := authMiddleware.RequireRoleAtLeast(user.RoleOperator)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: handlers.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: handlers.Auth.Refresh},
				{Method: http.MethodPost, Path: "/logout", Handler: handlers.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: handlers.Auth.Me},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.Room.ListRooms},
				{Method: http.MethodGet, Path: "/availability", Handler: handlers.Room.Availability},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Reservation.CreateReservation, Mw: []gin.HandlerFunc{requireOperator}},
				{Method: http.MethodGet, Path: "", Handler: handlers.Reservation.SearchReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Reservation.GetReservation},
				{Method: http.MethodPatch, Path: "/:id", Handler: handlers.Reservation.UpdateReservation, Mw: []gin.HandlerFunc{requireOperator}},
				{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Reservation.CancelReservation, Mw: []gin.HandlerFunc{requireOperator}},
			})
		}

		vouchers := apiGroup.Group("/vouchers")
		vouchers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Voucher.UploadVoucher, Mw: []gin.HandlerFunc{requireOperator}},
				{Method: http.MethodGet, Path: "/pending", Handler: handlers.Voucher.ListPendingVouchers},
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Voucher.GetVoucher},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: handlers.Voucher.ConfirmVoucher, Mw: []gin.HandlerFunc{requireOperator}},
			})
		}

		reports := apiGroup.Group("")
		reports.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/reports", Handler: handlers.Report.BuildReport},
				{Method: http.MethodGet, Path: "/reports/occupancy", Handler: handlers.Report.Occupancy},
				{Method: http.MethodGet, Path: "/dashboard", Handler: handlers.Report.Dashboard},
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
