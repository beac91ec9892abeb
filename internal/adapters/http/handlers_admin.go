package web

import (
	"log/slog"
	"net/http"

	"habitloop/internal/adapters/http/middleware"
	"habitloop/internal/application/orchestrators"
	revisionDomain "habitloop/internal/domain/revision"
)

// handleAdmin handles GET/POST for /admin, the raw catalog editor.
//
// The route gates on the session admin flag, granted by posting the admin
// code. The editor exposes the whole catalog as one JSON block; a submitted
// edit either replaces the catalog wholesale or, on a parse failure, comes
// straight back into the editor untouched so nothing typed is lost.
func handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" && r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, _ := middleware.GetSessionFromContext(r.Context())
	authed := sess.Admin

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		if !authed {
			deps := orchestrators.UnlockAdminDeps{Secret: adminSecret}
			input := orchestrators.UnlockAdminInput{Code: r.FormValue("code")}
			if err := orchestrators.ExecuteUnlockAdmin(r.Context(), input, deps); err != nil {
				renderTemplate(w, r, "admin.html", map[string]any{
					"Authed": false,
					"Error":  "Invalid admin code.",
				})
				return
			}
			sess.Admin = true
			authed = true
			if err := sessions.Write(w, sess); err != nil {
				internalError(w, err)
				return
			}
		}

		if authed && r.PostForm.Has("tasks_json") {
			submitted := r.FormValue("tasks_json")
			deps := orchestrators.SaveCatalogDeps{
				CatalogStore:  stores.CatalogStore,
				RevisionStore: stores.RevisionStore,
			}
			input := orchestrators.SaveCatalogInput{RawJSON: submitted, SavedBy: sess.Email}
			result, err := orchestrators.ExecuteSaveCatalog(r.Context(), input, deps)
			if err != nil {
				// The submitted text comes back as typed; disk is untouched.
				renderTemplate(w, r, "admin.html", map[string]any{
					"Authed":    true,
					"TasksJSON": submitted,
					"Error":     "JSON error: " + err.Error(),
					"Revisions": recentRevisions(r),
				})
				return
			}
			renderTemplate(w, r, "admin.html", map[string]any{
				"Authed":    true,
				"TasksJSON": result.Pretty,
				"Msg":       "Tasks saved.",
				"Revisions": recentRevisions(r),
			})
			return
		}
	}

	if !authed {
		renderTemplate(w, r, "admin.html", map[string]any{"Authed": false})
		return
	}

	cat, err := stores.CatalogStore.Load(r.Context())
	if err != nil {
		// The admin editor is where a broken catalog file gets fixed, so
		// surface the parse error here instead of failing the request.
		renderTemplate(w, r, "admin.html", map[string]any{
			"Authed":    true,
			"Error":     err.Error(),
			"Revisions": recentRevisions(r),
		})
		return
	}
	pretty, err := cat.MarshalPretty()
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin.html", map[string]any{
		"Authed":    true,
		"TasksJSON": string(pretty),
		"Revisions": recentRevisions(r),
	})
}

// recentRevisions loads the latest revision rows for display. Best-effort:
// the editor works fine without them.
func recentRevisions(r *http.Request) []revisionDomain.Revision {
	if stores.RevisionStore == nil {
		return nil
	}
	revs, err := stores.RevisionStore.ListRecent(r.Context(), 10)
	if err != nil {
		slog.Error("catalog_event", "event", "revision_list_failed", "error", err)
		return nil
	}
	return revs
}
