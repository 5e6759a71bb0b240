// Package metrics defines and registers all custom Prometheus metrics for
// the ImmoConnect listing API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "immoconnect"

// ── Listing metrics ───────────────────────────────────────────────────────────

// PropertiesCreatedTotal counts newly created listings.
// Label:
//   - city: the listing's city as submitted
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created, by city.",
	},
	[]string{"city"},
)

// PropertyMutationsTotal counts publish/unpublish/delete mutations.
// Labels:
//   - action: "publish", "unpublish", or "delete"
//   - result: "ok" or "error"
var PropertyMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_mutations_total",
		Help:      "Total number of property mutations, by action and result.",
	},
	[]string{"action", "result"},
)

// MutationConflictsTotal counts mutations rejected because another mutation
// on the same property was still in flight.
var MutationConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutation_conflicts_total",
		Help:      "Total number of mutations rejected by the per-property in-flight guard.",
	},
)

// ── Catalogue metrics ─────────────────────────────────────────────────────────

// CatalogueSearchesTotal counts catalogue requests.
// Label:
//   - filtered: "true" when a search term or city filter was supplied
var CatalogueSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalogue_searches_total",
		Help:      "Total number of catalogue browse requests, by whether a filter was applied.",
	},
	[]string{"filtered"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "unverified", or "error"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
