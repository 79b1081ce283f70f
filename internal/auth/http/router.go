package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ateekshsoni/gatekeeper-api/internal/auth/service"
	"github.com/ateekshsoni/gatekeeper-api/internal/auth/store"
	"github.com/ateekshsoni/gatekeeper-api/pkg/httpx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/jwtx"
	"github.com/ateekshsoni/gatekeeper-api/pkg/slogx"

	_ "github.com/ateekshsoni/gatekeeper-api/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.Manager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookies      refreshCookies

	store          store.Store
	SessionService *service.SessionService
	AccountService *service.AccountService
}

func NewRouter(
	tokens *jwtx.Manager,
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		cookies: refreshCookies{
			Secure: secureCookies,
			TTL:    tokens.RefreshTokenTTL(),
		},
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerAccount()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeeper Authentication Service API
//	@version		0.1.0
//	@description	Credential issuance and session lifecycle service: password
//	@description	authentication with brute-force lockout, JWT access tokens, and
//	@description	rotating single-use refresh tokens delivered via HttpOnly cookie.
//
//	@contact.name				Gatekeeper Maintainers
//	@contact.url				https://github.com/ateekshsoni/gatekeeper-api
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	// POST /register - strict rate limit by IP (public account creation)
	registerHandler := &RegisterHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate rate limit by IP (token rotation)
	refreshHandler := &RefreshHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - moderate rate limit by IP (works without access token)
	logoutHandler := &LogoutHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout-all - authenticated, moderate rate limit by user
	logoutAllHandler := &LogoutAllHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /v1/auth/logout-all",
		httpx.Chain(logoutAllHandler,
			httpx.AuthnMiddleware(r.tokens),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccount() {
	h := &AccountHandler{AccountService: r.AccountService, Cookies: r.cookies}

	// GET /me - lenient rate limit by user
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.tokens),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// PUT /me - moderate rate limit by user
	r.Mux.Handle("PUT /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.tokens),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /password - strict rate limit by user (credential verification)
	r.Mux.Handle("POST /v1/auth/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.tokens),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AccountService: r.AccountService, SessionService: r.SessionService}

	// PATCH /admin/users/{id}/status - admin only, moderate rate limit by user
	r.Mux.Handle("PATCH /v1/admin/users/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleSetStatus),
			httpx.AuthnMiddleware(r.tokens),
			httpx.RequireRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
