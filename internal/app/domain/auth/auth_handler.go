package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/handlers"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/middleware"
)

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
}

type AuthHandlers struct {
	*handlers.BaseHandler
	api Authenticator
	now func() time.Time
}

func NewAuthHandlers(base *handlers.BaseHandler, api Authenticator) *AuthHandlers {
	return &AuthHandlers{BaseHandler: base, api: api, now: time.Now}
}

// LoginPage shows the sign-in form, or skips it for a live session.
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	if sess := session.StoreFrom(c).Current(); sess != nil {
		if path, err := roles.ConsolePath(sess.Role); err == nil {
			middleware.Redirect(c, path)
			return
		}
	}
	h.RenderPage(c, http.StatusOK, "Sign in - Sports Meet", "", LoginForm("", nil))
}

func (h *AuthHandlers) LoginHandler(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	h.Logger.Info("Login attempt",
		zap.String("email", email),
		zap.String("client_ip", c.ClientIP()))

	if email == "" || password == "" {
		h.fail(c, http.StatusBadRequest, "missing_fields", email, components.BannerProps{
			Message: "Email and password are required",
			ID:      "login-required",
		})
		return
	}

	res, err := h.api.Login(c.Request.Context(), email, password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.Is(err, backend.ErrUnauthorized) || (errors.As(err, &apiErr) && apiErr.Status < 500) {
			h.fail(c, http.StatusUnauthorized, "invalid_credentials", email, components.BannerProps{
				Message:     "Invalid email or password",
				Description: "Please check your credentials and try again",
				ID:          "login-invalid",
			})
			return
		}
		h.Logger.Error("Login backend call failed", zap.Error(err))
		h.fail(c, http.StatusBadGateway, "backend_error", email, components.BannerProps{
			Message: "Sign in is unavailable right now. Please try again shortly.",
			ID:      "login-unavailable",
		})
		return
	}

	decoded, err := session.DecodeToken(res.Token)
	if err != nil || decoded.Expired(h.now()) {
		h.Logger.Error("Backend issued an unusable token", zap.Error(err))
		h.fail(c, http.StatusBadGateway, "bad_token", email, components.BannerProps{
			Message: "Sign in failed. Please try again.",
			ID:      "login-token",
		})
		return
	}

	roleName := res.Role
	if roleName == "" {
		roleName = decoded.Role
	}
	role, err := roles.Parse(roleName)
	if err != nil {
		h.Logger.Warn("Login for account without console role",
			zap.String("email", email),
			zap.String("role", roleName))
		h.fail(c, http.StatusForbidden, "no_console_role", email, components.BannerProps{
			Message: "This account has no console access.",
			ID:      "login-role",
		})
		return
	}

	sport := res.AssignedSportID.String()
	if sport == "" {
		sport = decoded.AssignedSportID
	}

	if err := session.StoreFrom(c).Set(res.Token, role, sport); err != nil {
		h.Logger.Error("Failed to store session", zap.Error(err))
		h.fail(c, http.StatusInternalServerError, "session_error", email, components.BannerProps{
			Message: "Sign in failed. Please try again.",
			ID:      "login-session",
		})
		return
	}

	path, _ := roles.ConsolePath(role)
	h.record(c, "success")
	h.Logger.Info("Successful login",
		zap.String("email", email),
		zap.String("role", string(role)),
		zap.Time("expires_at", decoded.ExpiresAt))
	middleware.Redirect(c, path)
}

func (h *AuthHandlers) LogoutHandler(c *gin.Context) {
	if err := session.StoreFrom(c).Clear(); err != nil {
		h.Logger.Error("Failed to clear session", zap.Error(err))
	}
	h.record(c, "logout")
	middleware.Redirect(c, handlers.LoginPath)
}

// fail answers HTMX callers with a banner in the form and everyone else with
// the whole page re-rendered.
func (h *AuthHandlers) fail(c *gin.Context, status int, outcome, email string, banner components.BannerProps) {
	h.record(c, outcome)
	banner.Type = components.BannerError
	banner.Dismissable = true

	if middleware.IsHTMX(c) {
		c.Header("HX-Retarget", "#login-messages")
		c.Header("HX-Reswap", "innerHTML")
		h.Render(c, status, components.Banner(banner))
		return
	}
	h.RenderPage(c, status, "Sign in - Sports Meet", "", LoginForm(email, &banner))
}

func (h *AuthHandlers) record(c *gin.Context, outcome string) {
	metrics.Get().AuthRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
