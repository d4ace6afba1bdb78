package guard

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/middleware"
)

// Options wires the guard's visible effects.
type Options struct {
	LoginPath string
	// NotFound renders the same page an unknown URL gets. It is used for role
	// mismatches too, so the response never says which role was expected.
	NotFound gin.HandlerFunc
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.LoginPath == "" {
		o.LoginPath = "/login"
	}
	if o.NotFound == nil {
		o.NotFound = func(c *gin.Context) { c.AbortWithStatus(404) }
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// RequireRole guards a literal role-named route.
func RequireRole(role roles.Role, opts Options) gin.HandlerFunc {
	opts = opts.withDefaults()
	return func(c *gin.Context) {
		enforce(c, ForRole(role), opts)
	}
}

// RequireView guards an opaque route whose view id is in the named path param.
func RequireView(param string, opts Options) gin.HandlerFunc {
	opts = opts.withDefaults()
	return func(c *gin.Context) {
		enforce(c, ForView(c.Param(param)), opts)
	}
}

func enforce(c *gin.Context, target Target, opts Options) {
	g := New()
	state := g.Run(session.StoreFrom(c).Current, target)

	metrics.Get().GuardDecisionsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("state", state.String())))

	switch state {
	case Authorized:
		sess := g.Session()
		session.SetCurrent(c, sess)
		c.Request = c.Request.WithContext(backend.WithBearer(c.Request.Context(), sess.Token))
		c.Next()
	case Unauthenticated:
		opts.Logger.Debug("Guard: no session", zap.String("path", c.Request.URL.Path))
		middleware.AuthRedirect(c, opts.LoginPath)
	default:
		opts.Logger.Info("Guard: route not available for session",
			zap.String("path", c.Request.URL.Path),
			zap.String("state", state.String()))
		opts.NotFound(c)
		c.Abort()
	}
}
