package web

import (
	"github.com/beanhall/beanhall/internal/account"
	"github.com/beanhall/beanhall/internal/web/templates"
)

// baseNavEntries is the static ordered navigation menu. Login and register
// are dropped for authenticated visitors; logout is appended instead.
var baseNavEntries = []templates.NavItem{
	{ID: "home", Label: "Home", URL: "/"},
	{ID: "catalog", Label: "Catalog", URL: "/catalog"},
	{ID: "about", Label: "About", URL: "/about"},
	{ID: "login", Label: "Log in", URL: "/login"},
	{ID: "register", Label: "Register", URL: "/register"},
}

// buildNav produces the rendered navigation for the current login state.
func buildNav(identity *account.Identity, activePage string) []templates.NavItem {
	nav := make([]templates.NavItem, 0, len(baseNavEntries)+1)
	for _, item := range baseNavEntries {
		if identity != nil && (item.ID == "login" || item.ID == "register") {
			continue
		}
		item.Active = item.ID == activePage
		nav = append(nav, item)
	}
	if identity != nil {
		nav = append(nav, templates.NavItem{ID: "logout", Label: "Log out", URL: "/logout"})
	}
	return nav
}
