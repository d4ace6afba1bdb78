// Package guard decides, once per request, whether the current session may
// see a dashboard route.
package guard

import (
	"fmt"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/session"
)

type State int

const (
	Checking State = iota
	Authorized
	Unauthenticated
	Forbidden
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Target is the role a route requires, given directly or as a view id.
type Target struct {
	role   roles.Role
	viewID string
	byView bool
}

func ForRole(r roles.Role) Target { return Target{role: r} }

func ForView(viewID string) Target { return Target{viewID: viewID, byView: true} }

// required resolves the role for the target; ok is false for unmapped view ids.
func (t Target) required() (roles.Role, bool) {
	if t.byView {
		return roles.RoleForViewID(t.viewID)
	}
	return t.role, t.role.Valid()
}

// Guard runs the check exactly once; every later Run returns the first result.
type Guard struct {
	state   State
	session *session.Session
}

func New() *Guard {
	return &Guard{state: Checking}
}

func (g *Guard) State() State { return g.state }

// Session is the authorized session, nil in every other state.
func (g *Guard) Session() *session.Session { return g.session }

// Run resolves the guard. A missing session wins over any role question, so
// probing unknown view ids without logging in always lands on the login page.
func (g *Guard) Run(current func() *session.Session, target Target) State {
	if g.state != Checking {
		return g.state
	}

	sess := current()
	if sess == nil {
		g.state = Unauthenticated
		return g.state
	}

	required, ok := target.required()
	if !ok || sess.Role != required {
		g.state = Forbidden
		return g.state
	}

	g.session = sess
	g.state = Authorized
	return g.state
}
