package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/middleware"
)

const LoginPath = "/login"

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger}
}

// viewer prefers the guard-authorized session and falls back to the cookie on
// public pages.
func (h *BaseHandler) viewer(c *gin.Context) *models.Viewer {
	if s := session.CurrentFrom(c); s != nil {
		return s.Viewer()
	}
	return session.StoreFrom(c).Current().Viewer()
}

func (h *BaseHandler) NewLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	viewer := h.viewer(c)
	nav := models.PublicNav
	if viewer != nil {
		nav = models.ConsoleNav(viewer.HomeURL)
	}

	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       nav,
		ActiveNav: activeNav,
		Viewer:    viewer,
	}
}

func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
}

// RenderPage sends only the fragment to HTMX callers and the full layout otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	if middleware.IsHTMX(c) && c.GetHeader("HX-Boosted") != "true" {
		h.Render(c, status, content)
		return
	}
	h.Render(c, status, components.LayoutPage(h.NewLayoutData(c, title, activeNav, content)))
}

func (h *BaseHandler) RenderNotFound(c *gin.Context) {
	h.RenderPage(c, http.StatusNotFound, "Not found - Sports Meet", "", components.NotFound())
	c.Abort()
}

// Notify renders a transient banner into the notifications area for HTMX
// callers, or inline otherwise.
func (h *BaseHandler) Notify(c *gin.Context, status int, props components.BannerProps) {
	if props.AutoDismiss == 0 {
		props.AutoDismiss = 5
	}
	props.Dismissable = true
	if middleware.IsHTMX(c) {
		c.Header("HX-Retarget", "#notifications")
		c.Header("HX-Reswap", "afterbegin")
	}
	h.Render(c, status, components.Banner(props))
}

// HandleBackendError turns a backend failure into a user facing outcome.
// Rejected credentials end the session; anything else leaves the page as it
// was and shows a banner.
func (h *BaseHandler) HandleBackendError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		h.ForceLogout(c, "backend rejected token")
		return
	}

	h.Logger.Warn("Backend call failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))

	msg := "The server could not complete the request. Please try again."
	status := http.StatusBadGateway
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		status = http.StatusUnprocessableEntity
		if apiErr.Message != "" {
			msg = apiErr.Message
		}
	}
	h.Notify(c, status, components.BannerProps{
		Type:    components.BannerError,
		Message: msg,
	})
}

// ForceLogout clears the session and redirects to the login page.
func (h *BaseHandler) ForceLogout(c *gin.Context, reason string) {
	h.Logger.Info("Forcing logout", zap.String("reason", reason), zap.String("path", c.Request.URL.Path))
	if err := session.StoreFrom(c).Clear(); err != nil {
		h.Logger.Error("Failed to clear session", zap.Error(err))
	}
	middleware.AuthRedirect(c, LoginPath)
}

// WidgetError is the inline replacement for a dashboard widget whose data did
// not arrive.
func WidgetError(id string, err error) templ.Component {
	msg := "Could not load this section."
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return components.Banner(components.BannerProps{
		Type:        components.BannerWarning,
		Message:     msg,
		Description: "Reload the page to retry.",
		ID:          id + "-error",
	})
}
