// Package metrics defines and registers all custom Prometheus metrics for the
// qB&B marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto, so importing the package registers them with the
// default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// UsersRegisteredTotal counts successfully created accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// ListingsCreatedTotal counts successfully created listings.
var ListingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	},
)

// BookingsCreatedTotal counts successfully created bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// ValidationRejectionsTotal counts requests rejected by the validation and
// business-rule checks.
// Label:
//   - operation: "register", "update_user", "create_listing",
//     "update_listing", "create_booking", "create_review"
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of lifecycle operations rejected by validation.",
	},
	[]string{"operation"},
)

// SessionRevocationsTotal counts forced re-authentications after email
// changes.
var SessionRevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_revocations_total",
		Help:      "Total number of session revocations triggered by profile updates.",
	},
)
