package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/beanhall/beanhall/internal/account"
	"github.com/beanhall/beanhall/internal/web/templates"
)

// Messages recovered into the session for the next page load.
const (
	flashLoggedIn      = "You are now logged in"
	flashLoggedOut     = "You have logged out"
	flashRegistered    = "Registration successful"
	msgBadCredentials  = "Invalid username or password"
	msgPasswordsDiffer = "Passwords do not match"
	msgUsernameEmpty   = "Username cannot be empty"
	msgUsernameTaken   = "That username is already taken"
	msgRegisterFailed  = "Could not create the account"
)

// catalogItems is the static coffee listing shown on /catalog.
var catalogItems = []templates.CatalogItem{
	{Name: "Black Honey", Origin: "Costa Rica", Description: "syrupy, dried fruit"},
	{Name: "Yirgacheffe", Origin: "Ethiopia", Description: "floral, bergamot"},
	{Name: "Cerrado Peaberry", Origin: "Brazil", Description: "hazelnut, cocoa"},
	{Name: "Huehuetenango", Origin: "Guatemala", Description: "stone fruit, caramel"},
}

// ensureSession returns the request's live session ID, creating a fresh
// session and cookie when none exists.
func (h *handler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id, ok := sessionIDFromRequest(r, h.sessions); ok {
		return id
	}
	id := h.sessions.create()
	setSessionCookie(w, id)
	return id
}

// pageContext assembles the shared layout state for one request, consuming
// the session flash in the process.
func (h *handler) pageContext(w http.ResponseWriter, r *http.Request, activePage string) templates.PageContext {
	sessionID := h.ensureSession(w, r)
	identity := h.sessions.identity(sessionID)

	page := templates.PageContext{
		AppName:    h.config.AppName,
		ActivePage: activePage,
		Flash:      h.sessions.takeFlash(sessionID),
		Nav:        buildNav(identity, activePage),
	}
	if identity != nil {
		page.LoggedIn = true
		page.Username = identity.Username
	}
	return page
}

// renderPage writes a full HTML page response.
func renderPage(w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component).ServeHTTP(w, r)
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r, "home")
	renderPage(w, r, templates.HomePage(page))
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r, "catalog")
	renderPage(w, r, templates.CatalogPage(page, catalogItems))
}

func (h *handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r, "about")
	renderPage(w, r, templates.AboutPage(page))
}

func (h *handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sessionID := h.ensureSession(w, r)
	view := templates.LoginView{Error: h.sessions.takeLoginError(sessionID)}
	if identity := h.sessions.identity(sessionID); identity != nil {
		view.Info = fmt.Sprintf("You are already signed in as %s", identity.Username)
	}

	page := h.pageContext(w, r, "login")
	renderPage(w, r, templates.LoginPage(page, view))
}

func (h *handler) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := h.ensureSession(w, r)

	if err := r.ParseForm(); err != nil {
		h.sessions.setLoginError(sessionID, msgBadCredentials)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	identity, err := h.accounts.Authenticate(r.Context(), username, password)
	if err != nil {
		// Bad credentials and unknown usernames land here identically.
		h.sessions.setLoginError(sessionID, msgBadCredentials)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.sessions.setIdentity(sessionID, identity)
	h.sessions.setFlash(sessionID, flashLoggedIn)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	sessionID := h.ensureSession(w, r)
	view := templates.RegisterView{Error: h.sessions.takeRegisterError(sessionID)}
	if identity := h.sessions.identity(sessionID); identity != nil {
		view.Info = fmt.Sprintf("You are already signed in as %s", identity.Username)
	}

	page := h.pageContext(w, r, "register")
	renderPage(w, r, templates.RegisterPage(page, view))
}

func (h *handler) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := h.ensureSession(w, r)

	redirectBack := func(message string) {
		h.sessions.setRegisterError(sessionID, message)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	}

	if err := r.ParseForm(); err != nil {
		redirectBack(msgRegisterFailed)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	passwordConfirm := r.PostFormValue("password_confirm")

	if password != passwordConfirm {
		redirectBack(msgPasswordsDiffer)
		return
	}
	if username == "" {
		redirectBack(msgUsernameEmpty)
		return
	}

	if _, err := h.accounts.Lookup(r.Context(), username); err == nil {
		redirectBack(msgUsernameTaken)
		return
	} else if !errors.Is(err, account.ErrNotFound) {
		redirectBack(msgRegisterFailed)
		return
	}

	created, err := h.accounts.Register(r.Context(), username, password)
	if err != nil {
		// The store's uniqueness constraint may still fire between the
		// pre-check and the insert.
		if errors.Is(err, account.ErrDuplicateUsername) {
			redirectBack(msgUsernameTaken)
			return
		}
		redirectBack(msgRegisterFailed)
		return
	}

	h.sessions.setIdentity(sessionID, account.Identity{AccountID: created.ID, Username: created.Username})
	h.sessions.setFlash(sessionID, flashRegistered)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := h.ensureSession(w, r)
	h.sessions.clearIdentity(sessionID)
	h.sessions.setFlash(sessionID, flashLoggedOut)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleCoffee bumps the visitor's coffee counter when logged in. The
// response is a fixed 418 regardless of outcome; increment failures are
// logged and swallowed.
func (h *handler) handleCoffee(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := sessionIDFromRequest(r, h.sessions); ok {
		if identity := h.sessions.identity(sessionID); identity != nil {
			count, err := h.accounts.IncrementCoffeeCount(r.Context(), identity.AccountID)
			if err != nil {
				log.Printf("increment coffee count for %s: %v", identity.Username, err)
			} else {
				log.Printf("coffee count for %s is now %d", identity.Username, count)
			}
		}
	}
	w.WriteHeader(http.StatusTeapot)
}

func (h *handler) handleHello(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello " + name})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode json response: %v", err)
	}
}
