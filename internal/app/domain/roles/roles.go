// Package roles holds the closed set of console roles and the static mapping
// between each role and the opaque view id used in dashboard URLs.
package roles

import (
	"errors"
	"fmt"
)

type Role string

const (
	SuperAdmin Role = "super_admin"
	SportsHead Role = "sports_head"
	Scorer     Role = "scorer"
	Committee  Role = "committee"
)

// ErrUnrecognizedRole is returned for any role name outside the closed set.
var ErrUnrecognizedRole = errors.New("unrecognized role")

// ViewID stands in for a role name in dashboard URLs.
type ViewID string

type entry struct {
	view  ViewID
	label string
	path  string
}

var table = map[Role]entry{
	SuperAdmin: {view: "q7r3v8p2", label: "Super Admin", path: "/admin"},
	SportsHead: {view: "x9d2k1m4", label: "Sports Head", path: "/sports-head"},
	Scorer:     {view: "m5t7w3z9", label: "Scorer", path: "/scorer"},
	Committee:  {view: "c4h6j8n2", label: "Committee", path: "/committee"},
}

var byView = func() map[ViewID]Role {
	m := make(map[ViewID]Role, len(table))
	for r, e := range table {
		if _, dup := m[e.view]; dup {
			panic(fmt.Sprintf("roles: duplicate view id %q", e.view))
		}
		m[e.view] = r
	}
	return m
}()

// All returns the roles in a stable order.
func All() []Role {
	return []Role{SuperAdmin, SportsHead, Scorer, Committee}
}

// Parse validates a role name coming from a token, cookie or backend payload.
func Parse(s string) (Role, error) {
	r := Role(s)
	if _, ok := table[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := table[r]
	return ok
}

func (r Role) String() string { return string(r) }

// Label is the human readable name, or the raw value for unknown roles.
func (r Role) Label() string {
	if e, ok := table[r]; ok {
		return e.label
	}
	return string(r)
}

// Path is the literal role-named dashboard route.
func (r Role) Path() (string, error) {
	e, ok := table[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedRole, string(r))
	}
	return e.path, nil
}

func ViewIDFor(r Role) (ViewID, error) {
	e, ok := table[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedRole, string(r))
	}
	return e.view, nil
}

// RoleForViewID looks up an untrusted path segment.
func RoleForViewID(id string) (Role, bool) {
	r, ok := byView[ViewID(id)]
	return r, ok
}

// ConsolePath is the opaque dashboard route for a role.
func ConsolePath(r Role) (string, error) {
	v, err := ViewIDFor(r)
	if err != nil {
		return "", err
	}
	return "/console/" + string(v), nil
}
