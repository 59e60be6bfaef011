package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"slotbook/internal/domain/user"
	"slotbook/internal/handler/api"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/config"
)

// multipart overhead on top of the file itself
const uploadEnvelope = 1 << 20

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Auth      *api.AuthHandler
	Services  *api.ServiceHandler
	Bookings  *api.BookingHandler
	Dashboard *api.DashboardHandler
	Uploads   *api.UploadHandler
	Public    *api.PublicHandler

	AuthMiddleware *middleware.AuthMiddleware
	Logger         *middleware.Logger
	// Set only when uploads are kept on local disk.
	StaticDir string `name:"uploadDir" optional:"true"`
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	RegisterJSONFieldNames()
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
	engine.NoRoute(middleware.NoRoute())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if h.StaticDir != "" {
		engine.Static("/uploads", h.StaticDir)
	}

	uploadLimit := middleware.BodyLimit(cfg.Upload.MaxBytes + uploadEnvelope)
	owner := []gin.HandlerFunc{
		h.AuthMiddleware.RequireAuth(),
		h.AuthMiddleware.RequireRole(user.RoleBusinessOwner),
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(owner...)
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/profile", Handler: h.Auth.Profile},
				{Method: http.MethodPut, Path: "/profile", Handler: h.Auth.UpdateProfile},
				{Method: http.MethodPut, Path: "/change-password", Handler: h.Auth.ChangePassword},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodDelete, Path: "/account", Handler: h.Auth.DeactivateAccount},
			})
		}

		public := apiGroup.Group("/public")
		{
			addRoutes(public, []route{
				{Method: http.MethodGet, Path: "/businesses/:business_id/services", Handler: h.Public.Services},
				{Method: http.MethodGet, Path: "/services/:id/availability", Handler: h.Public.Availability},
				{Method: http.MethodPost, Path: "/bookings", Handler: h.Public.CreateBooking},
				{Method: http.MethodPost, Path: "/bookings/:id/payment-proof", Handler: h.Public.UploadPaymentProof, Mw: []gin.HandlerFunc{uploadLimit}},
			})
		}

		services := apiGroup.Group("/services")
		services.Use(owner...)
		{
			// static segments before /:id
			addRoutes(services, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Services.List},
				{Method: http.MethodPost, Path: "", Handler: h.Services.Create},
				{Method: http.MethodGet, Path: "/categories", Handler: h.Services.Categories},
				{Method: http.MethodGet, Path: "/category/:category", Handler: h.Services.ByCategory},
				{Method: http.MethodGet, Path: "/search", Handler: h.Services.Search},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Services.Stats},
				{Method: http.MethodGet, Path: "/popular", Handler: h.Services.Popular},
				{Method: http.MethodPut, Path: "/bulk", Handler: h.Services.BulkUpdate},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Services.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Services.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Services.Delete},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(owner...)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Bookings.Stats},
				{Method: http.MethodGet, Path: "/reminders/due", Handler: h.Bookings.RemindersDue},
				{Method: http.MethodGet, Path: "/export", Handler: h.Bookings.Export},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Bookings.UpdateStatus},
				{Method: http.MethodPut, Path: "/:id/verify-payment", Handler: h.Bookings.VerifyPayment},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: h.Bookings.Cancel},
				{Method: http.MethodPut, Path: "/:id/reschedule", Handler: h.Bookings.Reschedule},
				{Method: http.MethodPut, Path: "/:id/reminder-sent", Handler: h.Bookings.MarkReminderSent},
			})
		}

		dashboard := apiGroup.Group("/dashboard")
		dashboard.Use(owner...)
		{
			addRoutes(dashboard, []route{
				{Method: http.MethodGet, Path: "/overview", Handler: h.Dashboard.Overview},
				{Method: http.MethodGet, Path: "/analytics/bookings", Handler: h.Dashboard.BookingAnalytics},
				{Method: http.MethodGet, Path: "/analytics/revenue", Handler: h.Dashboard.RevenueAnalytics},
				{Method: http.MethodGet, Path: "/notifications", Handler: h.Dashboard.Notifications},
				{Method: http.MethodPut, Path: "/notifications/:id/read", Handler: h.Dashboard.MarkNotificationRead},
				{Method: http.MethodGet, Path: "/settings", Handler: h.Dashboard.Settings},
				{Method: http.MethodPut, Path: "/settings", Handler: h.Dashboard.UpdateSettings},
			})
		}

		uploads := apiGroup.Group("/uploads")
		uploads.Use(owner...)
		{
			addRoutes(uploads, []route{
				{Method: http.MethodPost, Path: "/logo", Handler: h.Uploads.Logo, Mw: []gin.HandlerFunc{uploadLimit}},
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

// RegisterJSONFieldNames makes validation errors report json keys instead of Go field names.
func RegisterJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
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
