// Package metrics defines and registers the custom Prometheus metrics for the
// store-rating API. It is the single source of truth for metric names, labels,
// and help strings; HTTP-level request metrics come from the echoprometheus
// middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storerating"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful self-service registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// RatingsSubmittedTotal counts accepted rating submissions.
// Label:
//   - result: "created" (first rating for the pair) or "updated" (resubmission)
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of accepted rating submissions, labelled created/updated.",
	},
	[]string{"result"},
)

// AggregateCacheTotal counts store-aggregate cache lookups.
// Label:
//   - result: "hit" or "miss"
var AggregateCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregate_cache_total",
		Help:      "Total number of rating-aggregate cache lookups, labelled by result.",
	},
	[]string{"result"},
)
