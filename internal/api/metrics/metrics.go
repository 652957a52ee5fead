// Package metrics defines and registers all custom Prometheus metrics
// for the project-manager API. It is the single source of truth for
// metric names, labels, and help strings. Metrics self-register with the
// default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "projectmanager"

// ── Account metrics ──────────────────────────────────────────────────────────

// SignUpsTotal counts successfully registered accounts.
var SignUpsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts registered.",
	},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "ok", "bad_credentials", "not_eligible", "not_found",
//     "throttled", "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, labelled by result.",
	},
	[]string{"result"},
)

// ConfirmationsTotal counts account activations via confirmation token.
var ConfirmationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Total number of accounts activated.",
	},
)

// ── Project / task metrics ───────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// TasksCompletedTotal counts tasks marked completed.
var TasksCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks marked as completed.",
	},
)

// ── Mail metrics ─────────────────────────────────────────────────────────────

// MailDeliveriesTotal counts notification deliveries attempted by the
// mail dispatcher workers.
// Label:
//   - result: "ok" or "error"
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of notification e-mails attempted, labelled by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of messages waiting in each mail
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each mail dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
