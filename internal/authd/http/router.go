package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/service"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/pkg/httpx"
	"github.com/doughlab/authd/pkg/jwtx"
	"github.com/doughlab/authd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	cookieDomain string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
	TenantService  *service.TenantService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	cookieDomain, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		cookieDomain: cookieDomain,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerTenants()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Sessions:     r.SessionService,
		Users:        r.UserService,
		CookieDomain: r.cookieDomain,
	}

	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Refresh rotates the session from the refreshToken cookie alone.
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.Refresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /auth/self",
		httpx.Chain(http.HandlerFunc(h.Self),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.Logout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	adminOnly := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.LenientLimit),
	}

	r.Mux.Handle("POST /users", httpx.Chain(http.HandlerFunc(h.Create), adminOnly...))
	r.Mux.Handle("GET /users", httpx.Chain(http.HandlerFunc(h.List), adminOnly...))
	r.Mux.Handle("GET /users/{id}", httpx.Chain(http.HandlerFunc(h.Get), adminOnly...))
	r.Mux.Handle("PATCH /users/{id}", httpx.Chain(http.HandlerFunc(h.Update), adminOnly...))
	r.Mux.Handle("DELETE /users/{id}", httpx.Chain(http.HandlerFunc(h.Delete), adminOnly...))
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{Tenants: r.TenantService}

	adminOnly := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.LenientLimit),
	}

	// Listing tenants is public so registration UIs can offer a picker.
	r.Mux.Handle("GET /tenants",
		httpx.Chain(http.HandlerFunc(h.List),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /tenants", httpx.Chain(http.HandlerFunc(h.Create), adminOnly...))
	r.Mux.Handle("GET /tenants/{id}", httpx.Chain(http.HandlerFunc(h.Get), adminOnly...))
	r.Mux.Handle("PATCH /tenants/{id}", httpx.Chain(http.HandlerFunc(h.Update), adminOnly...))
	r.Mux.Handle("DELETE /tenants/{id}", httpx.Chain(http.HandlerFunc(h.Delete), adminOnly...))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
