package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/handlers"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
)

const timeLayout = "02 Jan 15:04"

func (h *Handler) superAdmin(ctx context.Context, consolePath string) ([]*widget, error) {
	l := newLoader(ctx)

	l.add("registrations", "Registrations", func(ctx context.Context) (templ.Component, error) {
		regs, err := h.api.Registrations(ctx, backend.RegistrationFilter{})
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(regs))
		for _, r := range regs {
			rows = append(rows, []string{
				r.StudentName, r.Email, r.CollegeName, joinIDs(r.SportIDs), r.TransactionID, string(r.PaymentStatus),
			})
		}
		return components.Table("registrations-table",
			[]string{"Name", "Email", "College", "Sports", "Transaction", "Payment"},
			rows, "No registrations yet."), nil
	})

	l.add("pending-payments", "Pending payments", func(ctx context.Context) (templ.Component, error) {
		regs, err := h.api.Registrations(ctx, backend.RegistrationFilter{PaymentStatus: models.PaymentPending})
		if err != nil {
			return nil, err
		}
		return pendingPayments(consolePath, regs), nil
	})

	l.add("users", "Users", func(ctx context.Context) (templ.Component, error) {
		users, err := h.api.Users(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{u.Name, u.Email, u.Role, u.AssignedSportID.String()})
		}
		return components.Table("users-table", []string{"Name", "Email", "Role", "Sport"}, rows, "No users."), nil
	})

	l.add("sports", "Sports", func(ctx context.Context) (templ.Component, error) {
		sports, err := h.api.Sports(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(sports))
		for _, s := range sports {
			rows = append(rows, []string{s.Name, s.Category, s.Gender, strconv.Itoa(s.Fee)})
		}
		return components.Table("sports-table", []string{"Sport", "Category", "Gender", "Fee"}, rows, "No sports."), nil
	})

	l.add("colleges", "Colleges", func(ctx context.Context) (templ.Component, error) {
		colleges, err := h.api.Colleges(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(colleges))
		for _, c := range colleges {
			rows = append(rows, []string{c.Name, c.City})
		}
		return components.Table("colleges-table", []string{"College", "City"}, rows, "No colleges."), nil
	})

	return l.wait()
}

func (h *Handler) sportsHead(ctx context.Context, v SportsHeadView, consolePath string) ([]*widget, error) {
	l := newLoader(ctx)

	if v.SportID == "" {
		l.static("assigned-sport", "Assigned sport", components.Banner(components.BannerProps{
			Type:    components.BannerInfo,
			Message: "No sport is assigned to your account yet.",
			ID:      "no-sport",
		}))
		return l.wait()
	}

	l.add("assigned-sport", "Assigned sport", func(ctx context.Context) (templ.Component, error) {
		sport, err := h.api.Sport(ctx, v.SportID)
		if err != nil {
			return nil, err
		}
		return components.Func(func(ctx context.Context, w *components.HTML) {
			w.Elem("p", sport.Name, "class", "text-xl font-bold", "data-sport-id", sport.ID.String())
			w.Elem("p", strings.TrimSpace(sport.Category+" "+sport.Gender), "class", "text-sm text-gray-600")
		}), nil
	})

	l.add("teams", "Teams", func(ctx context.Context) (templ.Component, error) {
		teams, err := h.api.Teams(ctx, v.SportID)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(teams))
		for _, t := range teams {
			rows = append(rows, []string{t.Name, t.CollegeName, strconv.Itoa(t.Players)})
		}
		table := components.Table("teams-table", []string{"Team", "College", "Players"}, rows, "No teams registered for this sport.")
		return components.Func(func(ctx context.Context, w *components.HTML) {
			w.Render(ctx, table)
			if len(teams) >= 2 {
				w.Render(ctx, scheduleMatchForm(consolePath, teams))
			}
		}), nil
	})

	l.add("matches", "Matches", func(ctx context.Context) (templ.Component, error) {
		matches, err := h.api.Matches(ctx, backend.MatchFilter{SportID: v.SportID})
		if err != nil {
			return nil, err
		}
		return matchTable("matches-table", matches), nil
	})

	return l.wait()
}

func (h *Handler) scorer(ctx context.Context, consolePath string) ([]*widget, error) {
	l := newLoader(ctx)

	for _, status := range []models.MatchStatus{models.MatchLive, models.MatchScheduled} {
		id, title := "live-matches", "Live matches"
		if status == models.MatchScheduled {
			id, title = "scheduled-matches", "Scheduled matches"
		}
		l.add(id, title, func(ctx context.Context) (templ.Component, error) {
			matches, err := h.api.Matches(ctx, backend.MatchFilter{Status: status})
			if err != nil {
				return nil, err
			}
			return scoreboard(consolePath, id, matches), nil
		})
	}

	return l.wait()
}

func (h *Handler) committee(ctx context.Context) ([]*widget, error) {
	l := newLoader(ctx)

	l.add("registrations-summary", "Registrations", func(ctx context.Context) (templ.Component, error) {
		regs, err := h.api.Registrations(ctx, backend.RegistrationFilter{})
		if err != nil {
			return nil, err
		}
		counts := map[models.PaymentStatus]int{}
		for _, r := range regs {
			counts[r.PaymentStatus]++
		}
		rows := [][]string{
			{"Total", strconv.Itoa(len(regs))},
			{"Pending", strconv.Itoa(counts[models.PaymentPending])},
			{"Approved", strconv.Itoa(counts[models.PaymentApproved])},
			{"Rejected", strconv.Itoa(counts[models.PaymentRejected])},
		}
		return components.Table("registration-totals", []string{"Registrations", "Count"}, rows, ""), nil
	})

	l.add("sport-counts", "Registrations per sport", func(ctx context.Context) (templ.Component, error) {
		var (
			sports []models.Sport
			regs   []models.Registration
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			sports, err = h.api.Sports(gctx)
			return err
		})
		g.Go(func() (err error) {
			regs, err = h.api.Registrations(gctx, backend.RegistrationFilter{})
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return components.Table("sport-counts-table", []string{"Sport", "Registrations"},
			sportCounts(sports, regs), "No sports."), nil
	})

	return l.wait()
}

// sportCounts returns one row per sport, busiest first, ties by name.
func sportCounts(sports []models.Sport, regs []models.Registration) [][]string {
	perSport := make(map[models.ID]int, len(sports))
	for _, r := range regs {
		for _, id := range r.SportIDs {
			perSport[id]++
		}
	}
	sorted := append([]models.Sport(nil), sports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := perSport[sorted[i].ID], perSport[sorted[j].ID]
		if ci != cj {
			return ci > cj
		}
		return sorted[i].Name < sorted[j].Name
	})
	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, []string{s.Name, strconv.Itoa(perSport[s.ID])})
	}
	return rows
}

func joinIDs(ids []models.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

func matchTable(id string, matches []models.Match) templ.Component {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.TeamA + " vs " + m.TeamB,
			strconv.Itoa(m.ScoreA) + " - " + strconv.Itoa(m.ScoreB),
			string(m.Status),
			m.Venue,
			m.StartsAt.Format(timeLayout),
		})
	}
	return components.Table(id, []string{"Match", "Score", "Status", "Venue", "Starts"}, rows, "No matches scheduled.")
}

func pendingPayments(consolePath string, regs []models.Registration) templ.Component {
	return components.Func(func(ctx context.Context, w *components.HTML) {
		if len(regs) == 0 {
			w.Elem("p", "No payments waiting for review.", "class", "text-sm text-gray-500", "data-empty", "pending-payments")
			return
		}
		w.Open("ul", "class", "divide-y")
		for _, r := range regs {
			action := consolePath + "/payments/" + r.ID.String() + "/verify"
			w.Open("li", "class", "flex items-center justify-between py-2", "data-registration", r.ID.String())
			w.Open("div")
			w.Elem("p", r.StudentName, "class", "font-medium")
			w.Elem("p", "Transaction "+r.TransactionID, "class", "text-sm text-gray-600")
			if r.ScreenshotURL != "" {
				w.Elem("a", "Screenshot", "href", r.ScreenshotURL, "target", "_blank", "rel", "noopener", "class", "text-sm underline")
			}
			w.Close("div")
			w.Open("form", "method", "post", "action", action, "hx-post", action, "class", "flex gap-2")
			w.Render(ctx, components.Button(components.ButtonProps{Label: "Approve", Name: "status", Value: string(models.PaymentApproved)}))
			w.Render(ctx, components.Button(components.ButtonProps{Label: "Reject", Name: "status", Value: string(models.PaymentRejected), Variant: components.ButtonDanger}))
			w.Close("form")
			w.Close("li")
		}
		w.Close("ul")
	})
}

func scheduleMatchForm(consolePath string, teams []models.Team) templ.Component {
	action := consolePath + "/matches"
	teamSelect := func(w *components.HTML, name, label string) {
		w.Open("div", "class", "mb-4")
		w.Elem("label", label, "for", name, "class", "block text-sm font-medium")
		w.Open("select", "id", name, "name", name, "required", "required", "class", "mt-1 block w-full rounded-md border px-3 py-2")
		for _, t := range teams {
			w.Elem("option", t.Name, "value", t.ID.String())
		}
		w.Close("select")
		w.Close("div")
	}
	return components.Func(func(ctx context.Context, w *components.HTML) {
		w.Open("form", "id", "schedule-match", "method", "post", "action", action, "hx-post", action, "class", "mt-6")
		w.Elem("h3", "Schedule a match", "class", "mb-2 font-semibold")
		teamSelect(w, "teamA", "Team A")
		teamSelect(w, "teamB", "Team B")
		w.Render(ctx, components.Field(components.FieldProps{Label: "Venue", Name: "venue", Required: true}))
		w.Render(ctx, components.Field(components.FieldProps{Label: "Starts at", Name: "startsAt", Type: "datetime-local", Required: true}))
		w.Render(ctx, components.Button(components.ButtonProps{Label: "Schedule"}))
		w.Close("form")
	})
}

func scoreboard(consolePath, id string, matches []models.Match) templ.Component {
	return components.Func(func(ctx context.Context, w *components.HTML) {
		if len(matches) == 0 {
			w.Elem("p", "No matches.", "class", "text-sm text-gray-500", "data-empty", id)
			return
		}
		w.Open("ul", "class", "divide-y")
		for _, m := range matches {
			action := consolePath + "/matches/" + m.ID.String() + "/score"
			w.Open("li", "class", "py-3", "data-match", m.ID.String())
			w.Elem("p", m.TeamA+" vs "+m.TeamB, "class", "font-medium")
			w.Open("form", "method", "post", "action", action, "hx-post", action, "class", "mt-2 flex items-end gap-2")
			w.Render(ctx, components.Field(components.FieldProps{Label: m.TeamA, Name: "scoreA", Type: "number", Value: strconv.Itoa(m.ScoreA), Required: true}))
			w.Render(ctx, components.Field(components.FieldProps{Label: m.TeamB, Name: "scoreB", Type: "number", Value: strconv.Itoa(m.ScoreB), Required: true}))
			w.Open("select", "name", "status", "class", "rounded-md border px-2 py-2")
			for _, s := range []models.MatchStatus{models.MatchLive, models.MatchCompleted} {
				attrs := []string{"value", string(s)}
				if s == m.Status {
					attrs = append(attrs, "selected", "selected")
				}
				w.Elem("option", string(s), attrs...)
			}
			w.Close("select")
			w.Render(ctx, components.Button(components.ButtonProps{Label: "Update"}))
			w.Close("form")
			w.Close("li")
		}
		w.Close("ul")
	})
}

func page(v View, viewer *models.Viewer, widgets []*widget) templ.Component {
	return components.Func(func(ctx context.Context, w *components.HTML) {
		w.Open("div", "id", "dashboard", "data-role", string(v.Role()), "class", "mx-auto max-w-6xl py-8")
		w.Elem("h1", v.Title(), "class", "mb-2 text-2xl font-bold")
		if viewer != nil && viewer.Subject != "" {
			w.Elem("p", "Signed in as "+viewer.Subject, "class", "mb-6 text-sm text-gray-600")
		}
		for _, wd := range widgets {
			body := wd.body
			if wd.err != nil {
				body = handlers.WidgetError(wd.id, wd.err)
			}
			w.Render(ctx, components.Section(wd.id, wd.title, body))
		}
		w.Close("div")
	})
}
