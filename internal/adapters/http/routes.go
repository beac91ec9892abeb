package web

import (
	"net/http"

	"habitloop/internal/adapters/http/middleware"
)

// registerRoutes wires the application routes onto the mux. Identified-only
// routes go through RequireAuth; the unlock and admin routes manage their own
// gating because their forms are reachable without a login.
func registerRoutes(mux *http.ServeMux) {
	mux.Handle("/{$}", middleware.RequireAuth(http.HandlerFunc(handleHome)))
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.Handle("/complete_day", middleware.RequireAuth(http.HandlerFunc(handleCompleteDay)))
	mux.Handle("/week/{week}", middleware.RequireAuth(http.HandlerFunc(handleWeek)))
	mux.HandleFunc("/unlock", handleUnlock)
	mux.Handle("/progress", middleware.RequireAuth(http.HandlerFunc(handleProgress)))
	mux.HandleFunc("/admin", handleAdmin)
}
