package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"sportscheduler/internal/delivery/http/controllers"
	"sportscheduler/internal/delivery/http/middleware"
	"sportscheduler/internal/domain"
)

// Controllers bundles the controllers the router wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Sport   *controllers.SportController
	Session *controllers.SessionController
	Request *controllers.RequestController
	Report  *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes.
// Role middleware gives the transport clean 401/403 responses; the services
// re-check roles on every gated operation.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(h))
	}
	player := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RolePlayer)(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/admin/signup", c.Auth.SignUpAdmin)
	mux.HandleFunc("POST /auth/admin/login", c.Auth.AdminLogin)

	// Profile
	mux.HandleFunc("GET /users/me", auth(c.User.Me))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))

	// Sports
	mux.HandleFunc("GET /sports", auth(c.Sport.List))
	mux.HandleFunc("POST /sports", admin(c.Sport.Create))
	mux.HandleFunc("PATCH /sports/{sportID}", admin(c.Sport.Rename))

	// Sessions
	mux.HandleFunc("GET /sessions", auth(c.Session.List))
	mux.HandleFunc("POST /sessions", auth(c.Session.Create))
	mux.HandleFunc("GET /sessions/{sessionID}", auth(c.Session.Get))
	mux.HandleFunc("POST /sessions/{sessionID}/cancel", admin(c.Session.Cancel))
	mux.HandleFunc("POST /sessions/{sessionID}/join", player(c.Request.Join))

	// Join requests
	mux.HandleFunc("GET /requests", admin(c.Request.ListGrouped))
	mux.HandleFunc("GET /requests/my", auth(c.Request.ListMine))
	mux.HandleFunc("POST /requests/{requestID}/approve", admin(c.Request.Approve))
	mux.HandleFunc("POST /requests/{requestID}/reject", admin(c.Request.Reject))
	mux.HandleFunc("POST /requests/{requestID}/cancel", player(c.Request.Cancel))

	// Dashboards and reports
	mux.HandleFunc("GET /dashboard", player(c.Report.PlayerDashboard))
	mux.HandleFunc("GET /admin/dashboard", admin(c.Report.AdminDashboard))
	mux.HandleFunc("GET /admin/reports", admin(c.Report.Report))
	mux.HandleFunc("GET /admin/users", admin(c.User.List))
	mux.HandleFunc("GET /admin/sports", admin(c.Sport.ListWithCreators))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
