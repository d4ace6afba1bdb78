package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session/sessiontest"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
)

func TestStoreCurrent(t *testing.T) {
	t.Run("no record means no session", func(t *testing.T) {
		store := NewStore(NewMemoryStorage(), nil)
		assert.Nil(t, store.Current())
	})

	t.Run("malformed token is discarded", func(t *testing.T) {
		for _, raw := range []string{"garbage", "a.b.c", "x.y"} {
			mem := NewMemoryStorage()
			require.NoError(t, mem.Save(Record{Token: raw, Role: "scorer", AssignedSportID: "3"}))
			store := NewStore(mem, nil)

			assert.NotPanics(t, func() { assert.Nil(t, store.Current()) })
			_, exists, _ := mem.Load()
			assert.False(t, exists, "record for %q should be cleared", raw)
		}
	})

	t.Run("expired token is discarded", func(t *testing.T) {
		mem := NewMemoryStorage()
		require.NoError(t, mem.Save(Record{Token: sessiontest.Token(t, "scorer", "", -time.Minute), Role: "scorer"}))
		store := NewStore(mem, nil)

		assert.Nil(t, store.Current())
		rec, exists, _ := mem.Load()
		assert.False(t, exists)
		assert.Equal(t, Record{}, rec)
	})

	t.Run("valid token yields the stored fields", func(t *testing.T) {
		token := sessiontest.Token(t, "sports_head", "4", time.Hour)
		mem := NewMemoryStorage()
		require.NoError(t, mem.Save(Record{Token: token, Role: "sports_head", AssignedSportID: "4"}))

		got := NewStore(mem, nil).Current()
		require.NotNil(t, got)
		assert.Equal(t, token, got.Token)
		assert.Equal(t, roles.SportsHead, got.Role)
		assert.Equal(t, "4", got.AssignedSportID)
		require.NotNil(t, got.Claims)
		assert.Equal(t, "user-sports_head", got.Claims.Subject)
	})

	t.Run("falls back to the token role", func(t *testing.T) {
		mem := NewMemoryStorage()
		require.NoError(t, mem.Save(Record{Token: sessiontest.Token(t, "committee", "", time.Hour)}))
		got := NewStore(mem, nil).Current()
		require.NotNil(t, got)
		assert.Equal(t, roles.Committee, got.Role)
	})

	t.Run("unreadable storage is treated as no session", func(t *testing.T) {
		store := NewStore(failingStorage{}, nil)
		assert.Nil(t, store.Current())
	})
}

func TestStoreSetRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryStorage(), nil)
	token := sessiontest.Token(t, "sports_head", "9", time.Hour)

	require.NoError(t, store.Set(token, roles.SportsHead, "9"))
	got := store.Current()
	require.NotNil(t, got)
	assert.Equal(t, roles.SportsHead, got.Role)
	assert.Equal(t, "9", got.AssignedSportID)

	// A later login without an assigned sport must not inherit the old one.
	scorerToken := sessiontest.Token(t, "scorer", "", time.Hour)
	require.NoError(t, store.Set(scorerToken, roles.Scorer, ""))
	got = store.Current()
	require.NotNil(t, got)
	assert.Equal(t, roles.Scorer, got.Role)
	assert.Empty(t, got.AssignedSportID)

	assert.Error(t, store.Set("", roles.Scorer, ""))
}

func TestStoreClearIsIdempotent(t *testing.T) {
	mem := NewMemoryStorage()
	store := NewStore(mem, nil)
	require.NoError(t, store.Set(sessiontest.Token(t, "committee", "", time.Hour), roles.Committee, ""))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	assert.Nil(t, store.Current())
	_, exists, _ := mem.Load()
	assert.False(t, exists)

	assert.NoError(t, NewStore(NewMemoryStorage(), nil).Clear())
}

func TestCookieStorageRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	token := sessiontest.Token(t, "scorer", "", time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions(CookieName(), NewCookieStore(config.SessionConfig{Secret: strings.Repeat("k", 32), MaxAge: 3600})))
	r.Use(Middleware(nil))
	r.POST("/set", func(c *gin.Context) {
		if err := StoreFrom(c).Set(token, roles.Scorer, ""); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/get", func(c *gin.Context) {
		s := StoreFrom(c).Current()
		if s == nil {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, string(s.Role))
	})
	r.POST("/clear", func(c *gin.Context) {
		_ = StoreFrom(c).Clear()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	get := func(cookies []*http.Cookie) string {
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}
	assert.Equal(t, "scorer", get(cookies))
	assert.Equal(t, "none", get(nil))

	req := httptest.NewRequest(http.MethodPost, "/clear", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "none", get(w.Result().Cookies()))
}

func TestStoreFromWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, StoreFrom(c).Current())
}

type failingStorage struct{}

func (failingStorage) Load() (Record, bool, error) { return Record{}, false, errors.New("boom") }
func (failingStorage) Save(Record) error           { return errors.New("boom") }
func (failingStorage) Delete() error               { return errors.New("boom") }
