package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/auth"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/dashboard"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/guard"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/live"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/pages"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/registration"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/handlers"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/services"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/middleware"
)

// extractRatePerMinute bounds the OCR text endpoint per client.
const extractRatePerMinute = 30

// Dependencies are built once by the server and shared by every handler.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Backend *backend.Client
	Catalog *services.CatalogService
	Hub     *live.Hub
}

type AppHandlers struct {
	Base         *handlers.BaseHandler
	Pages        *pages.PageHandlers
	Auth         *auth.AuthHandlers
	Registration *registration.RegistrationHandlers
	Dashboard    *dashboard.Handler
	Live         *live.LiveHandler
}

// Setup wires every route onto r.
func Setup(r *gin.Engine, deps Dependencies) {
	h := setupDependencies(deps)
	setupRouter(r, h, deps)
}

func setupDependencies(deps Dependencies) *AppHandlers {
	base := handlers.NewBaseHandler(deps.Logger)
	return &AppHandlers{
		Base:         base,
		Pages:        pages.NewPageHandlers(base, deps.Catalog),
		Auth:         auth.NewAuthHandlers(base, deps.Backend),
		Registration: registration.NewRegistrationHandlers(base, deps.Catalog, deps.Backend, deps.Config.UploadMaxBytes),
		Dashboard:    dashboard.NewHandler(base, deps.Backend),
		Live:         live.NewLiveHandler(deps.Hub, deps.Logger.Named("ws")),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, deps Dependencies) {
	log := deps.Logger

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public pages
	public := r.Group("/")
	{
		public.GET("/", h.Pages.Home)
		public.GET("/about", h.Pages.About)
		public.GET("/sports", h.Pages.Sports)
		public.GET("/schedule", h.Pages.Schedule)
		public.GET("/live", h.Pages.Live)
		public.GET("/live/:matchId", h.Pages.LiveMatch)
		public.GET("/ws/live", h.Live.HandleWebSocket)
	}

	// Registration
	extractLimiter := middleware.NewRateLimiter(log.Named("extract-limiter"), extractRatePerMinute)
	register := r.Group("/register")
	{
		register.GET("", h.Registration.RegisterPage)
		register.POST("", h.Registration.SubmitRegistration)
		register.POST("/extract-txn", extractLimiter.Middleware(), h.Registration.ExtractTransactionID)
	}

	// Auth
	loginLimiter := middleware.NewRateLimiter(log.Named("login-limiter"), deps.Config.LoginRatePerMinute)
	r.GET(handlers.LoginPath, h.Auth.LoginPage)
	r.POST(handlers.LoginPath, loginLimiter.Middleware(), h.Auth.LoginHandler)
	r.POST("/logout", h.Auth.LogoutHandler)
	r.GET("/dashboard", h.Dashboard.Home)

	// Consoles
	guardOpts := guard.Options{
		LoginPath: handlers.LoginPath,
		NotFound:  h.Base.RenderNotFound,
		Logger:    log.Named("guard"),
	}
	for _, role := range roles.All() {
		path, err := role.Path()
		if err != nil {
			log.Fatal("role without a dashboard path", zap.String("role", role.String()), zap.Error(err))
		}
		r.GET(path, guard.RequireRole(role, guardOpts), h.Dashboard.Show)
	}

	console := r.Group("/console/:viewId", guard.RequireView("viewId", guardOpts))
	{
		console.GET("", h.Dashboard.Show)
		console.POST("/payments/:id/verify", h.Dashboard.VerifyPayment)
		console.POST("/matches", h.Dashboard.CreateMatch)
		console.POST("/matches/:id/score", h.Dashboard.UpdateScore)
	}

	r.NoRoute(h.Pages.NotFound)

	log.Info("Routes registered", zap.Int("count", len(r.Routes())))
}
