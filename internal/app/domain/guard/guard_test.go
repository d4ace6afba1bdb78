package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session/sessiontest"
)

func storeWith(t *testing.T, role string, ttl time.Duration) (*session.Store, *session.MemoryStorage) {
	t.Helper()
	mem := session.NewMemoryStorage()
	if role != "" {
		require.NoError(t, mem.Save(session.Record{Token: sessiontest.Token(t, role, "", ttl), Role: role}))
	}
	return session.NewStore(mem, nil), mem
}

func TestGuardRun(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		ttl    time.Duration
		target Target
		want   State
	}{
		{"scorer on super admin route", "scorer", time.Hour, ForRole(roles.SuperAdmin), Forbidden},
		{"committee on committee route", "committee", time.Hour, ForRole(roles.Committee), Authorized},
		{"scorer on scorer route", "scorer", time.Hour, ForRole(roles.Scorer), Authorized},
		{"expired scorer", "scorer", -time.Hour, ForRole(roles.Scorer), Unauthenticated},
		{"no session on sports head view", "", 0, ForView("x9d2k1m4"), Unauthenticated},
		{"no session on unmapped view", "", 0, ForView("zzzzzzzz"), Unauthenticated},
		{"committee on unmapped view", "committee", time.Hour, ForView("zzzzzzzz"), Forbidden},
		{"sports head on own view", "sports_head", time.Hour, ForView("x9d2k1m4"), Authorized},
		{"committee on sports head view", "committee", time.Hour, ForView("x9d2k1m4"), Forbidden},
		{"unrecognized role", "guest", time.Hour, ForRole(roles.Scorer), Forbidden},
		{"invalid literal target", "scorer", time.Hour, ForRole(roles.Role("scorer ")), Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := storeWith(t, tt.role, tt.ttl)
			g := New()
			assert.Equal(t, Checking, g.State())
			got := g.Run(store.Current, tt.target)
			assert.Equal(t, tt.want, got)
			if got == Authorized {
				require.NotNil(t, g.Session())
			} else {
				assert.Nil(t, g.Session())
			}
		})
	}
}

func TestGuardRunsOnce(t *testing.T) {
	store, _ := storeWith(t, "committee", time.Hour)
	g := New()
	require.Equal(t, Authorized, g.Run(store.Current, ForRole(roles.Committee)))

	calls := 0
	again := g.Run(func() *session.Session { calls++; return nil }, ForRole(roles.SuperAdmin))
	assert.Equal(t, Authorized, again)
	assert.Zero(t, calls, "a resolved guard must not re-read the session")
}

func TestExpiredSessionIsCleared(t *testing.T) {
	store, mem := storeWith(t, "scorer", -time.Minute)
	assert.Equal(t, Unauthenticated, New().Run(store.Current, ForRole(roles.Scorer)))
	_, exists, _ := mem.Load()
	assert.False(t, exists)
}

func newRouter(store *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		session.WithStore(c, store)
		c.Next()
	})
	opts := Options{NotFound: func(c *gin.Context) { c.String(http.StatusNotFound, "not found") }}
	ok := func(c *gin.Context) {
		sess := session.CurrentFrom(c)
		c.String(http.StatusOK, "dashboard:"+string(sess.Role))
	}
	r.GET("/scorer", RequireRole(roles.Scorer, opts), ok)
	r.GET("/admin", RequireRole(roles.SuperAdmin, opts), ok)
	r.GET("/console/:viewId", RequireView("viewId", opts), ok)
	return r
}

func serve(r http.Handler, path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareScenarios(t *testing.T) {
	t.Run("scorer with future expiry reaches the scorer dashboard", func(t *testing.T) {
		store, _ := storeWith(t, "scorer", time.Hour)
		w := serve(newRouter(store), "/scorer", false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dashboard:scorer", w.Body.String())
	})

	t.Run("expired scorer is sent to login and storage is cleared", func(t *testing.T) {
		store, mem := storeWith(t, "scorer", -time.Hour)
		w := serve(newRouter(store), "/scorer", false)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		_, exists, _ := mem.Load()
		assert.False(t, exists)
	})

	t.Run("no session on a sports head view id redirects to login", func(t *testing.T) {
		store, _ := storeWith(t, "", 0)
		w := serve(newRouter(store), "/console/x9d2k1m4", false)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("committee on an unmapped view id gets not found", func(t *testing.T) {
		store, _ := storeWith(t, "committee", time.Hour)
		w := serve(newRouter(store), "/console/zzzzzzzz", false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("role mismatch looks exactly like an unknown view", func(t *testing.T) {
		store, _ := storeWith(t, "scorer", time.Hour)
		r := newRouter(store)
		mismatch := serve(r, "/admin", false)
		unknown := serve(r, "/console/zzzzzzzz", false)
		assert.Equal(t, unknown.Code, mismatch.Code)
		assert.Equal(t, unknown.Body.String(), mismatch.Body.String())
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		store, _ := storeWith(t, "", 0)
		w := serve(newRouter(store), "/scorer", true)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
	})

	t.Run("view id route authorizes the matching role", func(t *testing.T) {
		store, _ := storeWith(t, "committee", time.Hour)
		w := serve(newRouter(store), "/console/c4h6j8n2", false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dashboard:committee", w.Body.String())
	})
}
