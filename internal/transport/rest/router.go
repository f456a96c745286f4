package rest

import (
	"net/http"

	"github.com/nkalandadze/zmna-backend/internal/transport/middleware"
)

// RouterDeps bundles the handlers wired into the mux.
type RouterDeps struct {
	Verbs  *VerbHandler
	Beacon *BeaconHandler
	Admin  *AdminHandler
	Health *HealthHandler

	// MaintainerAuth wraps the admin routes.
	MaintainerAuth middleware.Middleware
}

// NewRouter builds the HTTP mux. Global middleware (request id,
// logging, recovery, CORS, rate limiting) is applied by the caller
// around the returned handler; only the maintainer guard is scoped
// here because it covers a subset of routes.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/verbs", d.Verbs.List)
	mux.HandleFunc("GET /api/verbs/search", d.Verbs.Search)
	mux.HandleFunc("GET /api/verbs/{id}", d.Verbs.Document)
	mux.HandleFunc("GET /fragments/verbs/{id}", d.Verbs.Fragment)

	mux.HandleFunc("POST /api/sections/visible", d.Beacon.SectionsVisible)

	admin := http.NewServeMux()
	admin.HandleFunc("POST /admin/cache/invalidate", d.Admin.InvalidateCache)
	admin.HandleFunc("POST /admin/index/reload", d.Admin.ReloadIndex)
	mux.Handle("/admin/", d.MaintainerAuth(admin))

	mux.HandleFunc("GET /healthz", d.Health.Live)
	mux.HandleFunc("GET /readyz", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	return mux
}
