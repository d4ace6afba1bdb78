package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

const (
	storeKey   = "session_store"
	currentKey = "session_current"
)

// Session is the signed-in user as resolved for one request.
type Session struct {
	Token           string
	Role            roles.Role
	AssignedSportID string
	Claims          *DecodedToken
}

// Viewer converts the session into page chrome data.
func (s *Session) Viewer() *models.Viewer {
	if s == nil {
		return nil
	}
	v := &models.Viewer{
		Role:      string(s.Role),
		RoleLabel: s.Role.Label(),
		HomeURL:   "/dashboard",
	}
	if s.Claims != nil {
		v.Subject = s.Claims.Subject
	}
	if p, err := roles.ConsolePath(s.Role); err == nil {
		v.HomeURL = p
	}
	return v
}

// Store is the only way handlers touch session state.
type Store struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

func NewStore(storage Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{storage: storage, logger: logger, now: time.Now}
}

// Current returns the live session or nil. An unreadable, undecodable or
// expired record is removed before returning nil.
func (s *Store) Current() *Session {
	rec, ok, err := s.storage.Load()
	if err != nil {
		s.discard("unreadable session record", err)
		return nil
	}
	if !ok || rec.Token == "" {
		return nil
	}

	decoded, err := DecodeToken(rec.Token)
	if err != nil {
		s.discard("undecodable token", err)
		return nil
	}
	if decoded.Expired(s.now()) {
		s.discard("expired token", nil)
		return nil
	}

	role := rec.Role
	if role == "" {
		role = decoded.Role
	}
	return &Session{
		Token:           rec.Token,
		Role:            roles.Role(role),
		AssignedSportID: rec.AssignedSportID,
		Claims:          decoded,
	}
}

// Set replaces the whole record. An empty assignedSportID removes any value
// left by a previous login.
func (s *Store) Set(token string, role roles.Role, assignedSportID string) error {
	if token == "" {
		return errors.New("session: empty token")
	}
	if err := s.storage.Save(Record{
		Token:           token,
		Role:            string(role),
		AssignedSportID: assignedSportID,
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the record. Safe to call with no session.
func (s *Store) Clear() error {
	if err := s.storage.Delete(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) discard(reason string, cause error) {
	fields := []zap.Field{zap.String("reason", reason)}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	s.logger.Info("Discarding session", fields...)
	if err := s.storage.Delete(); err != nil {
		s.logger.Warn("Failed to clear session", zap.Error(err))
	}
}

// Middleware binds a cookie backed Store to each request. It must run after
// sessions.Sessions.
func Middleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storeKey, NewStore(NewCookieStorage(sessions.Default(c)), logger))
		c.Next()
	}
}

// StoreFrom returns the request Store. Without Middleware it returns an empty
// in-memory store, so every guard sees "no session".
func StoreFrom(c *gin.Context) *Store {
	if v, exists := c.Get(storeKey); exists {
		if s, ok := v.(*Store); ok {
			return s
		}
	}
	return NewStore(NewMemoryStorage(), nil)
}

// WithStore binds an explicit Store, for tests and tools.
func WithStore(c *gin.Context, s *Store) {
	c.Set(storeKey, s)
}

// SetCurrent records the session the guard authorized for this request.
func SetCurrent(c *gin.Context, s *Session) {
	c.Set(currentKey, s)
}

// CurrentFrom returns the guard-authorized session, or nil on unguarded routes.
func CurrentFrom(c *gin.Context) *Session {
	if v, exists := c.Get(currentKey); exists {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}
