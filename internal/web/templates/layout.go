package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc HTML-escapes user-controlled text before it reaches the page.
func esc(value string) string {
	return templ.EscapeString(value)
}

// Layout wraps content in the shared page chrome: head, nav, flash banner.
func Layout(page PageContext, title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s — %s</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header class="site-header">
<a class="brand" href="/">%s</a>
<nav class="site-nav">
`, esc(title), esc(page.AppName), esc(page.AppName)); err != nil {
			return err
		}

		for _, item := range page.Nav {
			class := "nav-link"
			if item.Active {
				class = "nav-link active"
			}
			if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">%s</a>
`, class, esc(item.URL), esc(item.Label)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "</nav>\n"); err != nil {
			return err
		}
		if page.LoggedIn {
			if _, err := fmt.Fprintf(w, `<span class="whoami">%s</span>
`, esc(page.Username)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</header>\n<main>\n"); err != nil {
			return err
		}

		if page.Flash != "" {
			if _, err := fmt.Fprintf(w, `<p class="flash">%s</p>
`, esc(page.Flash)); err != nil {
				return err
			}
		}

		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
