// Package web serves the thin server-rendered front end. Pages carry
// the API base URL and call the REST API from the browser; the token
// lives in a cookie shared with the API's cookie fallback.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.gohtml
var tplFS embed.FS

// App holds the settings injected into every page.
type App struct {
	API string
}

// New builds the front-end handler.
func New(apiURL string) http.Handler {
	app := &App{API: apiURL}

	r := chi.NewRouter()
	r.Get("/", app.page("home.gohtml"))
	r.Get("/signin", app.page("signin.gohtml"))
	r.Get("/signup", app.page("signup.gohtml"))
	r.Get("/profile", app.page("profile.gohtml"))

	return r
}

func (a *App) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl, err := template.ParseFS(tplFS, "templates/base.gohtml", "templates/"+name)
		if err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
			return
		}

		data := map[string]any{
			"API":  a.API,
			"Path": r.URL.Path,
		}
		if err := tpl.ExecuteTemplate(w, "base", data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
