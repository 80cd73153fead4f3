package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/folio/api/folio" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	LinkService       *service.LinkService
	CatalogService    *service.CatalogService
	RevocationService *service.RevocationService // Optional: revoke endpoint is skipped without it
	AdminGuard        *service.AdminGuard        // Optional: admin routes are skipped without it
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Metrics sits inside logging so it sees the pattern the mux matched.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.MetricsMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerDownloads()
	r.registerResources()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Folio Download Service API
//	@version		0.1.0
//	@description	Signed, time-limited download links for the portfolio site.
//	@description
//	@description				Links are HS256 JWTs carried in the token query parameter of /api/download.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/folio
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	AdminAuth
//	@in							header
//	@name						Authorization
//	@description				Operator token. Format: "Bearer {ADMIN_TOKEN}". Send X-OTP as well when TOTP is enabled.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerDownloads() {
	// GET /api/download - lenient rate limit (browsers follow links directly)
	downloadHandler := &DownloadHandler{LinkService: r.LinkService}
	r.Mux.Handle("GET "+service.DownloadPath,
		httpx.Chain(downloadHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /api/download-links - moderate rate limit (each call signs a token)
	linksHandler := &DownloadLinksHandler{LinkService: r.LinkService}
	r.Mux.Handle("POST /api/download-links",
		httpx.Chain(linksHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerResources() {
	h := &ResourcesHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("GET /api/resources",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	// No admin token configured: the routes don't exist and the mux answers 404.
	if r.AdminGuard == nil || !r.AdminGuard.Enabled() {
		r.logger.Info("admin routes disabled", "reason", "no admin token")
		return
	}

	h := &AdminHandler{
		CatalogService:    r.CatalogService,
		RevocationService: r.RevocationService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.StrictLimit), // outermost, so failed guesses count too
			httpx.AuthnMiddleware(r.AdminGuard),
		)
	}

	r.Mux.Handle("GET /v1/admin/resources", secured(h.HandleList))
	r.Mux.Handle("PUT /v1/admin/resources/{id}", secured(h.HandlePut))
	r.Mux.Handle("DELETE /v1/admin/resources/{id}", secured(h.HandleDelete))

	if r.RevocationService != nil {
		r.Mux.Handle("POST /v1/admin/links/revoke", secured(h.HandleRevoke))
	}
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.LinkService, r.CatalogService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
