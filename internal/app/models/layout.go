package models

import "github.com/a-h/templ"

// Viewer is the signed-in user as far as page chrome is concerned.
type Viewer struct {
	Subject   string
	Role      string
	RoleLabel string
	HomeURL   string
}

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	Viewer    *Viewer
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

var PublicNav = Navigation{
	Items: []NavItem{
		{Name: "Home", URL: "/"},
		{Name: "Sports", URL: "/sports"},
		{Name: "Schedule", URL: "/schedule"},
		{Name: "Live", URL: "/live"},
		{Name: "Register", URL: "/register"},
		{Name: "About", URL: "/about"},
	},
}

// ConsoleNav is shown to signed-in staff; the dashboard link is filled per viewer.
func ConsoleNav(dashboardURL string) Navigation {
	return Navigation{
		Items: []NavItem{
			{Name: "Dashboard", URL: dashboardURL},
			{Name: "Schedule", URL: "/schedule"},
			{Name: "Live", URL: "/live"},
		},
	}
}
