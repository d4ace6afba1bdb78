package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"

	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
)

const (
	cookieName = "sportsmeet"
	recordKey  = "auth"
)

// Record is the persisted session. It is always written and removed as a
// whole so no reader can observe a token without its role or vice versa.
type Record struct {
	Token           string `json:"token"`
	Role            string `json:"role"`
	AssignedSportID string `json:"assignedSportId,omitempty"`
}

// Storage persists a single Record.
type Storage interface {
	Load() (Record, bool, error)
	Save(Record) error
	Delete() error
}

// NewCookieStore builds the signed cookie store that backs CookieStorage.
func NewCookieStore(cfg config.SessionConfig) sessions.Store {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// CookieName is the name of the session cookie set on responses.
func CookieName() string { return cookieName }

// CookieStorage keeps the record as one JSON value inside the signed session cookie.
type CookieStorage struct {
	sess sessions.Session
}

func NewCookieStorage(sess sessions.Session) *CookieStorage {
	return &CookieStorage{sess: sess}
}

func (s *CookieStorage) Load() (Record, bool, error) {
	raw, ok := s.sess.Get(recordKey).(string)
	if !ok || raw == "" {
		return Record{}, false, nil
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode session record: %w", err)
	}
	return rec, true, nil
}

func (s *CookieStorage) Save(rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	s.sess.Set(recordKey, string(b))
	return s.sess.Save()
}

func (s *CookieStorage) Delete() error {
	s.sess.Delete(recordKey)
	return s.sess.Save()
}

// MemoryStorage is a process-local Storage, used where no cookie exists.
type MemoryStorage struct {
	mu     sync.Mutex
	rec    Record
	exists bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, m.exists, nil
}

func (m *MemoryStorage) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec, m.exists = rec, true
	return nil
}

func (m *MemoryStorage) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec, m.exists = Record{}, false
	return nil
}
