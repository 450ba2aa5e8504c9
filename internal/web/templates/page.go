// Package templates renders the site's HTML pages as templ components.
package templates

// NavItem is one rendered navigation entry.
type NavItem struct {
	ID     string
	Label  string
	URL    string
	Active bool
}

// PageContext provides shared layout context for pages.
type PageContext struct {
	AppName    string
	ActivePage string
	Username   string
	LoggedIn   bool
	Flash      string
	Nav        []NavItem
}

// CatalogItem is one coffee in the catalog listing.
type CatalogItem struct {
	Name        string
	Origin      string
	Description string
}

// LoginView carries the one-shot messages for the login form.
type LoginView struct {
	Error string
	Info  string
}

// RegisterView carries the one-shot messages for the registration form.
type RegisterView struct {
	Error string
	Info  string
}
