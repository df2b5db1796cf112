// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of fontview's OTel instruments.
const MeterName = "fontview.session"

// OutcomeKey labels axis update counters.
const OutcomeKey = "outcome"

// RecordURLBuild counts one CSS2 URL computation on the global meter provider.
// Instruments are resolved per call so a provider installed later still
// receives the measurements.
func RecordURLBuild(ctx context.Context, kind string) {
	meter := otel.GetMeterProvider().Meter(MeterName)
	counter, err := meter.Int64Counter("fontview.css2.url_builds",
		metric.WithDescription("CSS2 request URLs computed, by request kind"))
	if err != nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String(RequestKindKey, kind)))
}

// RecordAxisUpdate counts one axis update attempt on the global meter provider.
func RecordAxisUpdate(ctx context.Context, tag, outcome string) {
	meter := otel.GetMeterProvider().Meter(MeterName)
	counter, err := meter.Int64Counter("fontview.axis.updates",
		metric.WithDescription("Axis value updates by outcome"))
	if err != nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AxisTagKey, tag),
		attribute.String(OutcomeKey, outcome),
	))
}
