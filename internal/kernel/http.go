// Package kernel builds the HTTP handler: global middleware, the metrics
// endpoint, static uploads and the API routes.
package kernel

import (
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/catalog/app/routes"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/reqid"
	"github.com/shashiranjanraj/catalog/pkg/response"
	"github.com/shashiranjanraj/catalog/pkg/router"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// Options are the collaborators the kernel needs besides the services.
type Options struct {
	// Limiter backs the rate limiter; nil disables it.
	Limiter cache.Store
	// Disk is served under STORAGE_URL when it is a local disk.
	Disk storage.Disk
}

// NewRouter registers everything on a fresh router. route:list uses it
// without booting any backing service.
func NewRouter(svc *services.Services, opts Options) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics: outermost for accurate total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.ClientURL())))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter, config.RateLimitPerMinute(), time.Minute))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", metrics.Handler())

	if local, ok := opts.Disk.(*storage.LocalDisk); ok {
		prefix := strings.TrimRight(config.StorageURL(), "/")
		if strings.HasPrefix(prefix, "/") {
			files := http.StripPrefix(prefix, http.FileServer(http.Dir(local.Root())))
			r.Handle(prefix+"/*", files)
		}
	}

	routes.RegisterAPI(r, svc)
	return r
}

// NewHTTPKernel returns the handler the server listens with.
func NewHTTPKernel(svc *services.Services, opts Options) http.Handler {
	return NewRouter(svc, opts).Handler()
}
