// Package metrics exposes Prometheus counters for the submission and
// ingestion pipelines. Counters register on the default registry; the
// router serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommentSubmissions counts accepted submissions by sentiment label.
	CommentSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citypulse",
		Name:      "comment_submissions_total",
		Help:      "Accepted comment submissions by sentiment label.",
	}, []string{"label"})

	// Translations counts translation attempts by result (ok or error).
	Translations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citypulse",
		Name:      "translations_total",
		Help:      "Translation attempts by result.",
	}, []string{"result"})

	// AlertRefreshes counts alert feed refreshes by result (ok, not_modified
	// or error).
	AlertRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citypulse",
		Name:      "alert_refreshes_total",
		Help:      "Alert feed refresh attempts by result.",
	}, []string{"result"})
)
