package dashboard

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/handlers"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/middleware"
)

// startsAtLayout is what a datetime-local input submits.
const startsAtLayout = "2006-01-02T15:04"

// Backend is the part of the REST client the consoles use.
type Backend interface {
	Registrations(ctx context.Context, f backend.RegistrationFilter) ([]models.Registration, error)
	Users(ctx context.Context) ([]models.User, error)
	Sports(ctx context.Context) ([]models.Sport, error)
	Sport(ctx context.Context, id string) (*models.Sport, error)
	Colleges(ctx context.Context) ([]models.College, error)
	Teams(ctx context.Context, sportID string) ([]models.Team, error)
	Matches(ctx context.Context, f backend.MatchFilter) ([]models.Match, error)
	VerifyPayment(ctx context.Context, registrationID string, status models.PaymentStatus, note string) error
	CreateMatch(ctx context.Context, m backend.NewMatch) (*models.Match, error)
	UpdateScore(ctx context.Context, matchID string, u backend.ScoreUpdate) (*models.Match, error)
}

type Handler struct {
	*handlers.BaseHandler
	api Backend
}

func NewHandler(base *handlers.BaseHandler, api Backend) *Handler {
	return &Handler{BaseHandler: base, api: api}
}

// Home sends a signed-in user to their console.
func (h *Handler) Home(c *gin.Context) {
	sess := session.StoreFrom(c).Current()
	if sess == nil {
		middleware.AuthRedirect(c, handlers.LoginPath)
		return
	}
	path, err := roles.ConsolePath(sess.Role)
	if err != nil {
		h.ForceLogout(c, "unrecognized role "+string(sess.Role))
		return
	}
	middleware.Redirect(c, path)
}

// Show renders the console for the guard-authorized session.
func (h *Handler) Show(c *gin.Context) {
	sess := session.CurrentFrom(c)
	if sess == nil {
		h.ForceLogout(c, "console reached without session")
		return
	}
	view, err := Select(sess.Role, sess.AssignedSportID)
	if err != nil {
		h.ForceLogout(c, err.Error())
		return
	}
	consolePath, err := roles.ConsolePath(view.Role())
	if err != nil {
		h.ForceLogout(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	var widgets []*widget
	switch v := view.(type) {
	case SuperAdminView:
		widgets, err = h.superAdmin(ctx, consolePath)
	case SportsHeadView:
		widgets, err = h.sportsHead(ctx, v, consolePath)
	case ScorerView:
		widgets, err = h.scorer(ctx, consolePath)
	case CommitteeView:
		widgets, err = h.committee(ctx)
	}
	if err != nil {
		h.HandleBackendError(c, err)
		return
	}

	for _, w := range widgets {
		if w.err != nil {
			h.Logger.Warn("Dashboard widget failed",
				zap.String("role", string(view.Role())),
				zap.String("widget", w.id),
				zap.Error(w.err))
		}
	}

	h.RenderPage(c, http.StatusOK, view.Title()+" - Sports Meet", "Dashboard", page(view, sess.Viewer(), widgets))
}

// VerifyPayment approves or rejects a registration's payment.
func (h *Handler) VerifyPayment(c *gin.Context) {
	sess, ok := h.require(c, roles.SuperAdmin)
	if !ok {
		return
	}

	status := models.PaymentStatus(c.PostForm("status"))
	if status != models.PaymentApproved && status != models.PaymentRejected {
		h.invalid(c, "Choose approve or reject.")
		return
	}

	id := c.Param("id")
	if err := h.api.VerifyPayment(c.Request.Context(), id, status, strings.TrimSpace(c.PostForm("note"))); err != nil {
		h.HandleBackendError(c, err)
		return
	}

	h.Logger.Info("Payment verified", zap.String("registration", id), zap.String("status", string(status)))
	h.done(c, sess, "Payment "+string(status)+".")
}

// CreateMatch schedules a match in the sports head's assigned sport.
func (h *Handler) CreateMatch(c *gin.Context) {
	sess, ok := h.require(c, roles.SportsHead)
	if !ok {
		return
	}
	if sess.AssignedSportID == "" {
		h.invalid(c, "No sport is assigned to your account.")
		return
	}

	m, msg := parseNewMatch(c, sess.AssignedSportID)
	if msg != "" {
		h.invalid(c, msg)
		return
	}

	created, err := h.api.CreateMatch(c.Request.Context(), m)
	if err != nil {
		h.HandleBackendError(c, err)
		return
	}

	h.Logger.Info("Match scheduled", zap.String("match", created.ID.String()), zap.String("sport", m.SportID))
	h.done(c, sess, "Match scheduled.")
}

// UpdateScore records a new score for a match.
func (h *Handler) UpdateScore(c *gin.Context) {
	sess, ok := h.require(c, roles.Scorer)
	if !ok {
		return
	}

	u, msg := parseScoreUpdate(c)
	if msg != "" {
		h.invalid(c, msg)
		return
	}

	id := c.Param("id")
	if _, err := h.api.UpdateScore(c.Request.Context(), id, u); err != nil {
		h.HandleBackendError(c, err)
		return
	}

	h.Logger.Info("Score updated", zap.String("match", id), zap.Int("scoreA", u.ScoreA), zap.Int("scoreB", u.ScoreB))
	h.done(c, sess, "Score updated.")
}

// require answers not found when the authorized session has a different role
// than the action needs.
func (h *Handler) require(c *gin.Context, role roles.Role) (*session.Session, bool) {
	sess := session.CurrentFrom(c)
	if sess == nil || sess.Role != role {
		h.RenderNotFound(c)
		return nil, false
	}
	return sess, true
}

func (h *Handler) invalid(c *gin.Context, msg string) {
	h.Notify(c, http.StatusUnprocessableEntity, components.BannerProps{
		Type:    components.BannerError,
		Message: msg,
	})
}

func (h *Handler) done(c *gin.Context, sess *session.Session, msg string) {
	if middleware.IsHTMX(c) {
		c.Header("HX-Trigger", "dashboard-changed")
		h.Notify(c, http.StatusOK, components.BannerProps{
			Type:    components.BannerSuccess,
			Message: msg,
		})
		return
	}
	path, err := roles.ConsolePath(sess.Role)
	if err != nil {
		h.ForceLogout(c, err.Error())
		return
	}
	middleware.Redirect(c, path)
}

func parseNewMatch(c *gin.Context, sportID string) (backend.NewMatch, string) {
	m := backend.NewMatch{
		SportID: sportID,
		TeamAID: strings.TrimSpace(c.PostForm("teamA")),
		TeamBID: strings.TrimSpace(c.PostForm("teamB")),
		Venue:   strings.TrimSpace(c.PostForm("venue")),
	}
	if m.TeamAID == "" || m.TeamBID == "" {
		return m, "Pick both teams."
	}
	if m.TeamAID == m.TeamBID {
		return m, "A team cannot play itself."
	}
	if m.Venue == "" {
		return m, "Venue is required."
	}
	startsAt, err := time.ParseInLocation(startsAtLayout, c.PostForm("startsAt"), time.Local)
	if err != nil {
		return m, "Start time is not valid."
	}
	m.StartsAt = startsAt
	return m, ""
}

func parseScoreUpdate(c *gin.Context) (backend.ScoreUpdate, string) {
	var u backend.ScoreUpdate
	a, errA := strconv.Atoi(strings.TrimSpace(c.PostForm("scoreA")))
	b, errB := strconv.Atoi(strings.TrimSpace(c.PostForm("scoreB")))
	if errA != nil || errB != nil || a < 0 || b < 0 {
		return u, "Scores must be whole numbers of zero or more."
	}
	u.ScoreA, u.ScoreB = a, b

	switch status := models.MatchStatus(c.PostForm("status")); status {
	case "", models.MatchLive, models.MatchCompleted:
		u.Status = status
	default:
		return u, "Unknown match status."
	}
	return u, ""
}
