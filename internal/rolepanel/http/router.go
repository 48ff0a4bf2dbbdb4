package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/pkg/httpx"
	"github.com/aussiebroadwan/rolepanel/pkg/jwtx"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/rolepanel/api/rolepanel" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultImportMaxBytes caps spreadsheet uploads when no limit is configured.
const DefaultImportMaxBytes int64 = 10 << 20

// Pinger reports whether an optional dependency is reachable.
type Pinger interface {
	Ping() error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	registry     *prometheus.Registry
	metrics      *httpx.Metrics

	store          store.Store
	Bus            Pinger // Optional: checked by /readyz when set
	ImportMaxBytes int64
	RolesService   *service.RolesService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Router{
		Mux:            http.NewServeMux(),
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		registry:       reg,
		metrics:        httpx.NewMetrics(reg, "rolepanel"),
		store:          st,
		ImportMaxBytes: DefaultImportMaxBytes,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRoles()
	r.registerImport()
	r.registerSystem()

	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry}))
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Role Panel API
//	@version		0.1.0
//	@description	Role administration for the web panel: list, create, edit and delete roles,
//	@description	replace their permission sets and bulk import roles from spreadsheets.
//	@description
//	@description				Every mutation is audited; the superadmin role cannot be changed.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/rolepanel
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
//	@description				JWT access token carrying capabilities. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, instrumented with the pattern as the
// metrics route label.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	all := append([]httpx.Middleware{r.metrics.Middleware(pattern)}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, all...))
}

// secured authenticates the caller, enforces capabilities and records the
// caller as the audit actor.
func (r *Router) secured(limit httpx.RateLimitConfig, capabilities ...string) []httpx.Middleware {
	return []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAllCapabilities(capabilities...),
		auditActor,
		httpx.RateLimitByUser(limit),
	}
}

func auditActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := audit.WithActor(req.Context(), httpx.UserIDFromContext(req.Context()))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.handle("GET /v1/roles", http.HandlerFunc(h.HandleList),
		r.secured(httpx.LenientLimit, domain.CapabilityRole)...)
	r.handle("GET /v1/roles/create", http.HandlerFunc(h.HandleCreateForm),
		r.secured(httpx.LenientLimit, domain.CapabilityRole)...)
	r.handle("POST /v1/roles", http.HandlerFunc(h.HandleCreate),
		r.secured(httpx.ModerateLimit, domain.CapabilityRole)...)

	// Edit and update additionally need the edit capability.
	r.handle("GET /v1/roles/{id}/edit", http.HandlerFunc(h.HandleEditForm),
		r.secured(httpx.LenientLimit, domain.CapabilityRole, domain.CapabilityRoleEdit)...)
	r.handle("PUT /v1/roles/{id}", http.HandlerFunc(h.HandleUpdate),
		r.secured(httpx.ModerateLimit, domain.CapabilityRole, domain.CapabilityRoleEdit)...)

	r.handle("DELETE /v1/roles/{id}", http.HandlerFunc(h.HandleDelete),
		r.secured(httpx.ModerateLimit, domain.CapabilityRole)...)
	r.handle("GET /v1/roles/{id}/history", http.HandlerFunc(h.HandleHistory),
		r.secured(httpx.LenientLimit, domain.CapabilityRole)...)
}

func (r *Router) registerImport() {
	h := &ImportHandler{RolesService: r.RolesService, MaxBytes: r.ImportMaxBytes}

	r.handle("GET /v1/roles/import-example", http.HandlerFunc(h.HandleTemplate),
		r.secured(httpx.ModerateLimit, domain.CapabilityRole)...)

	// Parsing spreadsheets is the most expensive call; strict limit.
	r.handle("POST /v1/roles/import", http.HandlerFunc(h.HandleImport),
		r.secured(httpx.StrictLimit, domain.CapabilityRole)...)
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently.
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.LenientLimit))
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Bus),
		httpx.RateLimitByIP(httpx.LenientLimit))
}
