// Package metrics defines all custom Prometheus metrics for the cargo API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cargo"

// ShipmentsCreatedTotal counts successfully created shipment records.
// Label:
//   - shipment_type: "Standard", "Express", "Economy", "Overnight", "International"
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipment records created, by shipment type.",
	},
	[]string{"shipment_type"},
)

// LookupsTotal counts identifier resolutions.
// Label:
//   - result: "id" (internal-identifier hit), "tracking_number" (fallback hit), "miss"
var LookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipment_lookups_total",
		Help:      "Total number of dual-identifier lookups, by resolution result.",
	},
	[]string{"result"},
)

// ValidationFailuresTotal counts requests rejected by field validation.
// Label:
//   - operation: "create" or "update"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of shipment payloads rejected by field validation.",
	},
	[]string{"operation"},
)

// RecentCacheTotal counts recent-listing cache decisions.
// Label:
//   - result: "hit" (served from cache) or "miss" (fetched from storage)
var RecentCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recent_cache_total",
		Help:      "Total number of recent-shipments cache checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
