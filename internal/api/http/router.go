package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups every resource handler the router serves.
type Handlers struct {
	Auth      *AuthHandler
	Groups    *GroupHandler
	Requests  *JoinRequestHandler
	Files     *FileHandler
	Sessions  *SessionHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
}

// NewRouter registers the REST surface. Route names key into
// config.RouteSecurity.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware, LoggingMiddleware)

	router.HandleFunc("/healthz", h.Health.Check).Methods(http.MethodGet).Name("health")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.Handler)

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost).Name("auth.register")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost).Name("auth.logout")
	api.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet).Name("auth.me")

	api.HandleFunc("/groups/search", h.Groups.Search).Methods(http.MethodGet).Name("groups.search")
	api.HandleFunc("/groups", h.Groups.ListMine).Methods(http.MethodGet).Name("groups.list")
	api.HandleFunc("/groups", h.Groups.Create).Methods(http.MethodPost).Name("groups.create")
	api.HandleFunc("/groups/join-by-code", h.Groups.JoinByCode).Methods(http.MethodPost).Name("groups.joinByCode")
	api.HandleFunc("/groups/{id:[0-9]+}", h.Groups.Get).Methods(http.MethodGet).Name("groups.get")
	api.HandleFunc("/groups/{id:[0-9]+}", h.Groups.Update).Methods(http.MethodPatch).Name("groups.update")
	api.HandleFunc("/groups/{id:[0-9]+}", h.Groups.Delete).Methods(http.MethodDelete).Name("groups.delete")
	api.HandleFunc("/groups/{id:[0-9]+}/members", h.Groups.ListMembers).Methods(http.MethodGet).Name("groups.members")
	api.HandleFunc("/groups/{id:[0-9]+}/members/me", h.Groups.Leave).Methods(http.MethodDelete).Name("groups.leave")
	api.HandleFunc("/groups/{id:[0-9]+}/members/{userId:[0-9]+}", h.Groups.Kick).Methods(http.MethodDelete).Name("groups.kick")

	api.HandleFunc("/groups/{id:[0-9]+}/requests", h.Requests.Create).Methods(http.MethodPost).Name("requests.create")
	api.HandleFunc("/groups/{id:[0-9]+}/requests", h.Requests.ListPending).Methods(http.MethodGet).Name("requests.pending")
	api.HandleFunc("/groups/{id:[0-9]+}/requests/me", h.Requests.Mine).Methods(http.MethodGet).Name("requests.mine")
	api.HandleFunc("/groups/{id:[0-9]+}/requests/count", h.Requests.CountPending).Methods(http.MethodGet).Name("requests.count")
	api.HandleFunc("/requests/pending-count", h.Requests.CountOwned).Methods(http.MethodGet).Name("requests.owned")
	api.HandleFunc("/requests/{id:[0-9]+}/accept", h.Requests.Accept).Methods(http.MethodPost).Name("requests.accept")
	api.HandleFunc("/requests/{id:[0-9]+}/reject", h.Requests.Reject).Methods(http.MethodPost).Name("requests.reject")
	api.HandleFunc("/requests/{id:[0-9]+}", h.Requests.Cancel).Methods(http.MethodDelete).Name("requests.cancel")

	api.HandleFunc("/groups/{id:[0-9]+}/files", h.Files.Upload).Methods(http.MethodPost).Name("files.upload")
	api.HandleFunc("/groups/{id:[0-9]+}/files", h.Files.List).Methods(http.MethodGet).Name("files.list")
	api.HandleFunc("/files/{id:[0-9]+}/download", h.Files.Download).Methods(http.MethodGet).Name("files.download")
	api.HandleFunc("/files/{id:[0-9]+}", h.Files.Delete).Methods(http.MethodDelete).Name("files.delete")

	api.HandleFunc("/groups/{id:[0-9]+}/sessions", h.Sessions.Create).Methods(http.MethodPost).Name("sessions.create")
	api.HandleFunc("/groups/{id:[0-9]+}/sessions", h.Sessions.List).Methods(http.MethodGet).Name("sessions.list")
	api.HandleFunc("/sessions/{id:[0-9]+}", h.Sessions.Get).Methods(http.MethodGet).Name("sessions.get")
	api.HandleFunc("/sessions/{id:[0-9]+}", h.Sessions.Update).Methods(http.MethodPatch).Name("sessions.update")
	api.HandleFunc("/sessions/{id:[0-9]+}", h.Sessions.Delete).Methods(http.MethodDelete).Name("sessions.delete")

	api.HandleFunc("/dashboard/stats", h.Dashboard.Stats).Methods(http.MethodGet).Name("dashboard.stats")

	return router
}
