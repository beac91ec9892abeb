package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"habitloop/internal/adapters/http/middleware"
	"habitloop/internal/application/orchestrators"
	"habitloop/internal/application/projections"
)

//go:embed templates
var templatesFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in task text is escaped (WithUnsafe is NOT set), preventing XSS
// through the admin-edited catalog.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"currentEmail": func() string { return sess.Email },
		"isLoggedIn":   func() bool { return sess.Identified() },
		"isPremium":    func() bool { return sess.Premium },
		"isAdmin":      func() bool { return sess.Admin },
		"csrfToken":    func() string { return csrf.Token(r) },
		"add":          func(a, b int) int { return a + b },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleLogin handles GET (form) and POST (identify) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already identified, go straight to week 1
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok && sess.Identified() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
			Email: r.FormValue("email"),
		})
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": err.Error(),
			})
			return
		}

		// Identify the session, keeping any unlock flags it already carries
		sess, _ := middleware.GetSessionFromContext(r.Context())
		sess.Email = result.Email
		if err := sessions.Write(w, sess); err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles GET /logout. Clears the whole session, flags included.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleHome renders the week-1 view.
func handleHome(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := projections.GetWeekViewDeps{
		CatalogStore:  stores.CatalogStore,
		ProgressStore: stores.ProgressStore,
	}
	result, err := projections.QueryGetWeekView(r.Context(), projections.GetWeekViewQuery{User: sess.Email, Week: 1}, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "home.html", map[string]any{
		"User": sess.Email,
		"View": result,
	})
}

// handleCompleteDay handles POST /complete_day. Marks a day done and
// redirects back to the week the user was on.
func handleCompleteDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	week := formInt(r, "week", 1)
	day := formInt(r, "day", 1)

	deps := orchestrators.CompleteDayDeps{ProgressStore: stores.ProgressStore}
	input := orchestrators.CompleteDayInput{User: sess.Email, Week: week, Day: day}
	if err := orchestrators.ExecuteCompleteDay(r.Context(), input, deps); err != nil {
		internalError(w, err)
		return
	}

	if week == 1 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/week/%d", week), http.StatusSeeOther)
}

// handleWeek renders a week beyond the first. Week 1 lives at /; weeks 2+
// show a locked view until the session carries the premium flag.
func handleWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if week == 1 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess, _ := middleware.GetSessionFromContext(r.Context())
	if !sess.Premium {
		renderTemplate(w, r, "locked.html", map[string]any{
			"Week":         week,
			"CheckoutLink": checkoutLink,
		})
		return
	}

	deps := projections.GetWeekViewDeps{
		CatalogStore:  stores.CatalogStore,
		ProgressStore: stores.ProgressStore,
	}
	result, err := projections.QueryGetWeekView(r.Context(), projections.GetWeekViewQuery{User: sess.Email, Week: week}, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "week.html", map[string]any{
		"User": sess.Email,
		"View": result,
	})
}

// handleUnlock handles POST /unlock. Validates the premium code and sets the
// session flag. Reachable without a login; the target week view still
// requires one.
func handleUnlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	sess, _ := middleware.GetSessionFromContext(r.Context())
	week := formInt(r, "week", 2)

	deps := orchestrators.UnlockPremiumDeps{
		Secret: premiumSecret,
		Sender: emailSender,
		From:   emailFromAddress,
	}
	input := orchestrators.UnlockPremiumInput{
		Code:  r.FormValue("code"),
		Email: sess.Email,
	}
	if err := orchestrators.ExecuteUnlockPremium(r.Context(), input, deps); err != nil {
		renderTemplate(w, r, "locked.html", map[string]any{
			"Week":         week,
			"CheckoutLink": checkoutLink,
			"Error":        "Invalid code.",
		})
		return
	}

	sess.Premium = true
	if err := sessions.Write(w, sess); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/week/%d", week), http.StatusSeeOther)
}

// handleProgress renders completed-day counts for weeks 1 through 4.
func handleProgress(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := projections.GetProgressSummaryDeps{ProgressStore: stores.ProgressStore}
	result, err := projections.QueryGetProgressSummary(r.Context(), projections.GetProgressSummaryQuery{User: sess.Email}, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "progress.html", map[string]any{
		"User":  sess.Email,
		"Weeks": result.Weeks,
	})
}

// formInt parses a form value as an int, falling back to def when the field
// is missing, empty, or not a number.
func formInt(r *http.Request, field string, def int) int {
	v := r.FormValue(field)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
