package pages

import (
	"context"
	"sort"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/components"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
)

const (
	dayLayout  = "Monday, 02 Jan"
	timeLayout = "15:04"
)

func unavailable(id string) templ.Component {
	return components.Banner(components.BannerProps{
		Type:    components.BannerWarning,
		Message: "This information is unavailable right now. Please try again shortly.",
		ID:      id,
	})
}

func HomePage(upcoming []models.Match, err error) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("section", "id", "hero", "class", "py-16 text-center")
		h.Elem("h1", "College Sports Meet", "class", "text-4xl font-extrabold")
		h.Elem("p", "Register, follow the schedule and watch scores update live.", "class", "mt-4 text-lg text-gray-600")
		h.Open("div", "class", "mt-8 flex justify-center gap-4")
		h.Elem("a", "Register now", "href", "/register", "class", components.ButtonClass(components.ButtonPrimary, ""))
		h.Elem("a", "Live scores", "href", "/live", "class", components.ButtonClass(components.ButtonSecondary, ""))
		h.Close("div")
		h.Close("section")

		h.Open("section", "id", "upcoming", "class", "mx-auto max-w-4xl")
		h.Elem("h2", "Coming up", "class", "mb-4 text-2xl font-bold")
		switch {
		case err != nil:
			h.Render(ctx, unavailable("upcoming-error"))
		case len(upcoming) == 0:
			h.Elem("p", "No upcoming matches yet.", "class", "text-gray-500", "data-empty", "upcoming")
		default:
			h.Open("ul", "class", "divide-y")
			for _, m := range upcoming {
				h.Open("li", "class", "py-2", "data-match", m.ID.String())
				h.Elem("span", m.TeamA+" vs "+m.TeamB, "class", "font-medium")
				h.Elem("span", " "+m.StartsAt.Format(dayLayout+" "+timeLayout), "class", "text-sm text-gray-600")
				h.Close("li")
			}
			h.Close("ul")
		}
		h.Close("section")
	})
}

func AboutPage() templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("section", "id", "about", "class", "mx-auto max-w-3xl py-12")
		h.Elem("h1", "About the meet", "class", "mb-4 text-3xl font-bold")
		h.Elem("p", "The annual inter-college sports meet brings students from across the region together for individual and team events.", "class", "mb-4")
		h.Elem("p", "Registration is open to enrolled students. Each registration is confirmed once the organizing committee has verified the payment.", "class", "mb-4")
		h.Elem("p", "Match schedules and live scores are published on this site as the meet progresses.")
		h.Close("section")
	})
}

// SportsPage groups the catalog by category.
func SportsPage(sports []models.Sport, err error) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("section", "id", "sports", "class", "mx-auto max-w-4xl py-12")
		h.Elem("h1", "Sports", "class", "mb-6 text-3xl font-bold")
		if err != nil {
			h.Render(ctx, unavailable("sports-error"))
			h.Close("section")
			return
		}

		byCategory := map[string][]models.Sport{}
		for _, s := range sports {
			cat := s.Category
			if cat == "" {
				cat = "Other"
			}
			byCategory[cat] = append(byCategory[cat], s)
		}
		categories := make([]string, 0, len(byCategory))
		for cat := range byCategory {
			categories = append(categories, cat)
		}
		sort.Strings(categories)

		if len(categories) == 0 {
			h.Elem("p", "Sports will be announced soon.", "class", "text-gray-500", "data-empty", "sports")
		}
		for _, cat := range categories {
			h.Open("div", "class", "mb-8", "data-category", cat)
			h.Elem("h2", cat, "class", "mb-2 text-xl font-semibold")
			rows := make([][]string, 0, len(byCategory[cat]))
			for _, s := range byCategory[cat] {
				fee := "Free"
				if s.Fee > 0 {
					fee = "₹" + strconv.Itoa(s.Fee)
				}
				rows = append(rows, []string{s.Name, s.Gender, fee})
			}
			h.Render(ctx, components.Table("", []string{"Sport", "Gender", "Fee"}, rows, ""))
			h.Close("div")
		}
		h.Close("section")
	})
}

// SchedulePage lists matches grouped by day, in the order given.
func SchedulePage(matches []models.Match, sportNames map[models.ID]string, err error) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("section", "id", "schedule", "class", "mx-auto max-w-4xl py-12")
		h.Elem("h1", "Schedule", "class", "mb-6 text-3xl font-bold")
		if err != nil {
			h.Render(ctx, unavailable("schedule-error"))
			h.Close("section")
			return
		}
		if len(matches) == 0 {
			h.Elem("p", "No matches scheduled yet.", "class", "text-gray-500", "data-empty", "schedule")
		}

		day := ""
		var rows [][]string
		flush := func() {
			if day == "" {
				return
			}
			h.Open("div", "class", "mb-6", "data-day", day)
			h.Elem("h2", day, "class", "mb-2 text-lg font-semibold")
			h.Render(ctx, components.Table("", []string{"Time", "Sport", "Match", "Venue", "Status"}, rows, ""))
			h.Close("div")
			rows = nil
		}
		for _, m := range matches {
			d := m.StartsAt.Format(dayLayout)
			if d != day {
				flush()
				day = d
			}
			sport := sportNames[m.SportID]
			if sport == "" {
				sport = m.Sport
			}
			rows = append(rows, []string{m.StartsAt.Format(timeLayout), sport, m.TeamA + " vs " + m.TeamB, m.Venue, string(m.Status)})
		}
		flush()
		h.Close("section")
	})
}

// scoreCard is updated in place by the live script; the data attributes are
// what it looks for.
func scoreCard(h *components.HTML, m models.Match) {
	id := m.ID.String()
	h.Open("div", "class", "rounded-lg border p-4", "data-match", id)
	h.Elem("a", m.TeamA+" vs "+m.TeamB, "href", "/live/"+id, "class", "font-semibold")
	h.Open("p", "class", "mt-2 text-3xl font-bold")
	h.Elem("span", strconv.Itoa(m.ScoreA), "data-score", "a")
	h.Text(" - ")
	h.Elem("span", strconv.Itoa(m.ScoreB), "data-score", "b")
	h.Close("p")
	h.Elem("p", string(m.Status), "class", "text-sm text-gray-600", "data-status", "")
	h.Close("div")
}

func liveFeed(room string, body func()) func(h *components.HTML) {
	return func(h *components.HTML) {
		h.Open("div", "id", "live-feed", "data-ws", "/ws/live", "data-room", room, "class", "grid gap-4 md:grid-cols-2")
		body()
		h.Close("div")
		h.Raw(`<script src="/assets/js/live.js" defer></script>`)
	}
}

func LivePage(live []models.Match, err error) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("section", "id", "live", "class", "mx-auto max-w-4xl py-12")
		h.Elem("h1", "Live scores", "class", "mb-6 text-3xl font-bold")
		if err != nil {
			h.Render(ctx, unavailable("live-error"))
		}
		liveFeed("overview", func() {
			if len(live) == 0 && err == nil {
				h.Elem("p", "No matches are being played right now.", "class", "text-gray-500", "data-empty", "live")
			}
			for _, m := range live {
				scoreCard(h, m)
			}
		})(h)
		h.Close("section")
	})
}

func LiveMatchPage(m *models.Match) templ.Component {
	return components.Func(func(ctx context.Context, h *components.HTML) {
		h.Open("section", "id", "live-match", "class", "mx-auto max-w-2xl py-12")
		h.Elem("h1", m.TeamA+" vs "+m.TeamB, "class", "mb-2 text-3xl font-bold")
		if m.Venue != "" {
			h.Elem("p", m.Venue+" · "+m.StartsAt.Format(dayLayout+" "+timeLayout), "class", "mb-6 text-gray-600")
		}
		liveFeed("match:"+m.ID.String(), func() { scoreCard(h, *m) })(h)
		h.Close("section")
	})
}
