package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"parlay-api/internal/models"
)

var (
	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parlay_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	ParlaysBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parlay_builds_total",
			Help: "Parlay build attempts by sport, style and result",
		},
		[]string{"sport", "style", "result"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parlay_odds_upstream_seconds",
			Help:    "Latency of odds provider calls",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"sport", "result"},
	)

	FallbackUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parlay_style_fallback_total",
			Help: "Parlays built from the unfiltered pool because the style filter undersupplied",
		},
		[]string{"style"},
	)
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(HttpRequests)
		prometheus.MustRegister(ParlaysBuilt)
		prometheus.MustRegister(UpstreamLatency)
		prometheus.MustRegister(FallbackUsed)
	})
}

// ObserveUpstream records one odds provider call
func ObserveUpstream(sport string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	UpstreamLatency.WithLabelValues(sport, result).Observe(time.Since(started).Seconds())
}

// Middleware counts requests by matched route
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = models.StatusCode(err)
			}
		}

		HttpRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}
