package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/devconnect/internal/auth/service"
	"github.com/aussiebroadwan/devconnect/internal/auth/store"
	"github.com/aussiebroadwan/devconnect/pkg/httpx"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"

	_ "github.com/aussiebroadwan/devconnect/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokenHeader  string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	AccountService *service.AccountService
}

func NewRouter(
	tokens *service.TokenService,
	accounts *service.AccountService,
	st store.Store,
	tokenHeader, buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		tokenHeader:    tokenHeader,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		store:          st,
		TokenService:   tokens,
		AccountService: accounts,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			DevConnect Auth API
//	@version		0.1.0
//	@description	Account registration, login and session tokens for DevConnect.
//	@description
//	@description				Tokens are HS256 JWTs. Send them in the x-auth-token header.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/devconnect
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						x-auth-token
//	@description				Session token returned by login or registration.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AccountService: r.AccountService,
		TokenService:   r.TokenService,
	}

	// GET /api/auth - gated, lenient limit per account
	r.Mux.Handle("GET /api/auth",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.TokenService, r.tokenHeader),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	// POST /api/auth - login attempts, strict limit per IP
	r.Mux.Handle("POST /api/auth",
		httpx.Chain(http.HandlerFunc(h.HandlePost),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		AccountService: r.AccountService,
		TokenService:   r.TokenService,
	}

	r.Mux.Handle("POST /api/users",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
