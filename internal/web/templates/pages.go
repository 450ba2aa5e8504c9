package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HomePage renders the landing page.
func HomePage(page PageContext) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		greeting := "Welcome to the coffee hall."
		if page.LoggedIn {
			greeting = fmt.Sprintf("Welcome back, %s.", esc(page.Username))
		}
		_, err := fmt.Fprintf(w, `<h1>%s</h1>
<p>%s</p>
<p>Browse the <a href="/catalog">catalog</a> or pour yourself a <a href="/coffee">coffee</a>.</p>
`, esc(page.AppName), greeting)
		return err
	})
	return Layout(page, "Home", content)
}

// CatalogPage renders the static coffee catalog.
func CatalogPage(page PageContext, items []CatalogItem) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Catalog</h1>\n<ul class=\"catalog\">\n"); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := fmt.Fprintf(w, `<li><strong>%s</strong> <em>%s</em> — %s</li>
`, esc(item.Name), esc(item.Origin), esc(item.Description)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	})
	return Layout(page, "Catalog", content)
}

// AboutPage renders the about page.
func AboutPage(page PageContext) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>About</h1>
<p>%s is a small coffee catalog where regulars keep count of their cups.</p>
`, esc(page.AppName))
		return err
	})
	return Layout(page, "About", content)
}

// LoginPage renders the login form with any one-shot messages.
func LoginPage(page PageContext, view LoginView) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeFormMessages(w, view.Error, view.Info); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<h1>Log in</h1>
<form method="post" action="/login">
<label>Username <input type="text" name="username" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Log in</button>
</form>
<p>No account yet? <a href="/register">Register</a>.</p>
`)
		return err
	})
	return Layout(page, "Log in", content)
}

// RegisterPage renders the registration form with any one-shot messages.
func RegisterPage(page PageContext, view RegisterView) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeFormMessages(w, view.Error, view.Info); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<h1>Register</h1>
<form method="post" action="/register">
<label>Username <input type="text" name="username" required></label>
<label>Password <input type="password" name="password" required></label>
<label>Confirm password <input type="password" name="password_confirm" required></label>
<button type="submit">Register</button>
</form>
<p>Already registered? <a href="/login">Log in</a>.</p>
`)
		return err
	})
	return Layout(page, "Register", content)
}

// writeFormMessages writes the error and info banners shared by both forms.
func writeFormMessages(w io.Writer, errorMessage, info string) error {
	if errorMessage != "" {
		if _, err := fmt.Fprintf(w, `<p class="error">%s</p>
`, esc(errorMessage)); err != nil {
			return err
		}
	}
	if info != "" {
		if _, err := fmt.Fprintf(w, `<p class="info">%s</p>
`, esc(info)); err != nil {
			return err
		}
	}
	return nil
}
