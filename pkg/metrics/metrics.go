package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "auth_failures_total", Help: "Number of rejected requests at the auth gate by reason."},
		[]string{"reason"},
	)
	GithubCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "github_cache_total", Help: "GitHub repo proxy cache lookups by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AuthFailures)
	reg.MustRegister(GithubCache)
}
