package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/extractdate/internal/profile"
	"github.com/hrygo/extractdate/plugin/extractdate"
	"github.com/hrygo/extractdate/server/internal/observability"
	"github.com/hrygo/extractdate/server/middleware"
)

// APIV1Service serves the extraction API.
type APIV1Service struct {
	Profile *profile.Profile
	Metrics *observability.Metrics
	Logger  *slog.Logger

	rateLimiter *middleware.RateLimiter
	// newExtractor builds the per-request session; tests replace it to pin the clock.
	newExtractor func() *extractdate.Extractor
}

// NewAPIV1Service creates the API service for a validated profile.
func NewAPIV1Service(p *profile.Profile, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &APIV1Service{
		Profile:     p,
		Metrics:     observability.NewMetrics(),
		Logger:      logger,
		rateLimiter: middleware.NewRateLimiter(p.RateLimit, p.RateBurst),
	}
	s.newExtractor = func() *extractdate.Extractor {
		return extractdate.New(append(p.ExtractorOptions(), extractdate.WithLogger(logger))...)
	}
	return s
}

// Register mounts the API routes on e.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.GET("/healthz", s.Healthz)

	g := e.Group("/api/v1", s.requestContext)
	g.POST("/extract", s.Extract, s.rateLimiter.Middleware())
	g.GET("/metrics", s.GetMetrics)
}

// requestContext attaches a RequestContext with a fresh request ID to the
// request and echoes the ID in the X-Request-ID header.
func (s *APIV1Service) requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqCtx := observability.NewRequestContext(s.Logger, c.RealIP())
		c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)
		req := c.Request()
		c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), reqCtx)))
		return next(c)
	}
}

// requestContextOf returns the RequestContext attached by requestContext,
// creating one when the handler runs outside the group.
func (s *APIV1Service) requestContextOf(c echo.Context) *observability.RequestContext {
	if reqCtx, ok := observability.FromContext(c.Request().Context()); ok {
		return reqCtx
	}
	return observability.NewRequestContext(s.Logger, c.RealIP())
}

// Healthz reports liveness.
// GET /healthz
func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetMetrics returns the extraction counters.
// GET /api/v1/metrics
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Metrics.Snapshot())
}
