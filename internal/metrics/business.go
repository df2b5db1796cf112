// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog metrics
	catalogTypefaces = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fontview_catalog_typefaces",
		Help: "Number of typefaces in the loaded catalog",
	})

	catalogReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fontview_catalog_reloads_total",
		Help: "Catalog reload attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	// Session metrics
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fontview_sessions_active",
		Help: "Browsing sessions currently held in memory",
	})

	typefaceSelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fontview_typeface_selections_total",
		Help: "Typeface selections by outcome",
	}, []string{"outcome"}) // outcome=success|not_found|malformed

	axisUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fontview_axis_updates_total",
		Help: "Axis value updates by outcome",
	}, []string{"outcome"}) // outcome=success|unknown_axis

	// URL builder metrics
	css2URLBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fontview_css2_url_builds_total",
		Help: "CSS2 request URLs computed, by request kind",
	}, []string{"kind"}) // kind=none|static|variable
)

// SetCatalogTypefaces records the size of the active catalog.
func SetCatalogTypefaces(n int) {
	catalogTypefaces.Set(float64(n))
}

// RecordCatalogReload counts a catalog reload attempt.
func RecordCatalogReload(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	catalogReloadsTotal.WithLabelValues(outcome).Inc()
}

// SetSessionsActive records the number of live sessions.
func SetSessionsActive(n int) {
	sessionsActive.Set(float64(n))
}

// RecordTypefaceSelection counts a selection attempt.
func RecordTypefaceSelection(outcome string) {
	typefaceSelectionsTotal.WithLabelValues(outcome).Inc()
}

// RecordAxisUpdate counts an axis update attempt.
func RecordAxisUpdate(outcome string) {
	axisUpdatesTotal.WithLabelValues(outcome).Inc()
}

// RecordURLBuild counts one URL computation.
func RecordURLBuild(kind string) {
	css2URLBuildsTotal.WithLabelValues(kind).Inc()
}
