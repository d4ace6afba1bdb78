// Package dashboard renders the console for each role and the actions each
// console exposes.
package dashboard

import (
	"fmt"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/roles"
)

// View is the console chosen for a session. The set of variants is closed.
type View interface {
	Role() roles.Role
	Title() string
	view()
}

type SuperAdminView struct{}

type SportsHeadView struct {
	SportID string
}

type ScorerView struct{}

type CommitteeView struct{}

func (SuperAdminView) Role() roles.Role { return roles.SuperAdmin }
func (SportsHeadView) Role() roles.Role { return roles.SportsHead }
func (ScorerView) Role() roles.Role     { return roles.Scorer }
func (CommitteeView) Role() roles.Role  { return roles.Committee }

func (SuperAdminView) Title() string { return "Super Admin Dashboard" }
func (SportsHeadView) Title() string { return "Sports Head Dashboard" }
func (ScorerView) Title() string     { return "Scorer Dashboard" }
func (CommitteeView) Title() string  { return "Committee Dashboard" }

func (SuperAdminView) view() {}
func (SportsHeadView) view() {}
func (ScorerView) view()     {}
func (CommitteeView) view()  {}

// Select maps a role to its console. assignedSportID only matters to the
// sports head view.
func Select(role roles.Role, assignedSportID string) (View, error) {
	switch role {
	case roles.SuperAdmin:
		return SuperAdminView{}, nil
	case roles.SportsHead:
		return SportsHeadView{SportID: assignedSportID}, nil
	case roles.Scorer:
		return ScorerView{}, nil
	case roles.Committee:
		return CommitteeView{}, nil
	default:
		return nil, fmt.Errorf("select dashboard for %q: %w", role, roles.ErrUnrecognizedRole)
	}
}
