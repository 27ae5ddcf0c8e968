// Package metrics exposes Prometheus counters for provider calls and
// enablement actions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidCode      = "invalid_code"
	OutcomeNetworkFailure   = "network_failure"
	OutcomeNotAuthenticated = "not_authenticated"
	OutcomeError            = "error"
)

type Collector struct {
	tokenExchanges *prometheus.CounterVec
	repoListings   *prometheus.CounterVec
	enablements    prometheus.Counter
}

// NewCollector registers the app's metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tokenExchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "repo_enabler_token_exchanges_total",
			Help: "OAuth authorization code exchanges by outcome.",
		}, []string{"outcome"}),
		repoListings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "repo_enabler_repo_listings_total",
			Help: "Provider repository listings by outcome.",
		}, []string{"outcome"}),
		enablements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repo_enabler_enablements_total",
			Help: "Repositories enabled.",
		}),
	}

	reg.MustRegister(c.tokenExchanges, c.repoListings, c.enablements)
	return c
}

func (c *Collector) RecordTokenExchange(outcome string) {
	c.tokenExchanges.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRepoListing(outcome string) {
	c.repoListings.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordEnablement() {
	c.enablements.Inc()
}

// Handler serves the Prometheus scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
