// Package pages serves the public, unauthenticated site.
package pages

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/handlers"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/services"
)

const upcomingOnHome = 5

type Catalog interface {
	Sports(ctx context.Context) ([]models.Sport, error)
	Schedule(ctx context.Context) ([]models.Match, error)
	Match(ctx context.Context, id string) (*models.Match, error)
	SportNames(ctx context.Context) (map[models.ID]string, error)
}

type PageHandlers struct {
	*handlers.BaseHandler
	catalog Catalog
	now     func() time.Time
}

func NewPageHandlers(base *handlers.BaseHandler, catalog Catalog) *PageHandlers {
	return &PageHandlers{BaseHandler: base, catalog: catalog, now: time.Now}
}

func (h *PageHandlers) Home(c *gin.Context) {
	schedule, err := h.catalog.Schedule(c.Request.Context())
	if err != nil {
		h.Logger.Warn("Schedule unavailable for home page", zap.Error(err))
	}
	upcoming := services.Upcoming(schedule, h.now(), upcomingOnHome)
	h.RenderPage(c, http.StatusOK, "Sports Meet", "Home", HomePage(upcoming, err))
}

func (h *PageHandlers) About(c *gin.Context) {
	h.RenderPage(c, http.StatusOK, "About - Sports Meet", "About", AboutPage())
}

func (h *PageHandlers) Sports(c *gin.Context) {
	sports, err := h.catalog.Sports(c.Request.Context())
	if err != nil {
		h.Logger.Warn("Sports catalog unavailable", zap.Error(err))
	}
	h.RenderPage(c, http.StatusOK, "Sports - Sports Meet", "Sports", SportsPage(sports, err))
}

// Schedule lists every match, optionally narrowed by ?sport=<id>.
func (h *PageHandlers) Schedule(c *gin.Context) {
	ctx := c.Request.Context()
	schedule, err := h.catalog.Schedule(ctx)
	if err != nil {
		h.Logger.Warn("Schedule unavailable", zap.Error(err))
	}
	names, nerr := h.catalog.SportNames(ctx)
	if nerr != nil {
		h.Logger.Warn("Sport names unavailable", zap.Error(nerr))
	}

	if sport := c.Query("sport"); sport != "" {
		filtered := schedule[:0:0]
		for _, m := range schedule {
			if m.SportID.String() == sport {
				filtered = append(filtered, m)
			}
		}
		schedule = filtered
	}
	h.RenderPage(c, http.StatusOK, "Schedule - Sports Meet", "Schedule", SchedulePage(schedule, names, err))
}

// Live shows every live match and subscribes to the overview room.
func (h *PageHandlers) Live(c *gin.Context) {
	schedule, err := h.catalog.Schedule(c.Request.Context())
	if err != nil {
		h.Logger.Warn("Schedule unavailable for live page", zap.Error(err))
	}
	var live []models.Match
	for _, m := range schedule {
		if m.Status == models.MatchLive {
			live = append(live, m)
		}
	}
	h.RenderPage(c, http.StatusOK, "Live - Sports Meet", "Live", LivePage(live, err))
}

// LiveMatch follows one match.
func (h *PageHandlers) LiveMatch(c *gin.Context) {
	m, err := h.catalog.Match(c.Request.Context(), c.Param("matchId"))
	if errors.Is(err, models.ErrNotFound) {
		h.RenderNotFound(c)
		return
	}
	if err != nil {
		h.HandleBackendError(c, err)
		return
	}
	h.RenderPage(c, http.StatusOK, m.TeamA+" vs "+m.TeamB+" - Sports Meet", "Live", LiveMatchPage(m))
}

func (h *PageHandlers) NotFound(c *gin.Context) {
	h.RenderNotFound(c)
}
