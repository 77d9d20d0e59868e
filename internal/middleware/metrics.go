package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flick_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// MatchComputations counts match computations by kind (pairwise, group).
	MatchComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flick_match_computations_total",
		Help: "Total number of match computations by kind",
	}, []string{"kind"})

	// TMDBFetches counts metadata provider calls by outcome.
	TMDBFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flick_tmdb_fetches_total",
		Help: "Total number of TMDB fetches by outcome",
	}, []string{"outcome"})

	// MovieCacheLookups counts movie metadata cache lookups by result.
	MovieCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flick_movie_cache_lookups_total",
		Help: "Total number of movie cache lookups by result (hit, stale, miss)",
	}, []string{"result"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The instance is process-wide: fiberprometheus registers collectors on
// the default registry, which tolerates exactly one registration.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(service)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
