// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by fontview spans.
const (
	FamilyKey      = "font.family"
	AxisTagKey     = "axis.tag"
	AxisValueKey   = "axis.value"
	RequestKindKey = "css2.kind"
	SessionIDKey   = "session.id"
	CatalogSizeKey = "catalog.size"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// TypefaceAttributes describes the typeface a span works on. Empty values are omitted.
func TypefaceAttributes(family, kind string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if family != "" {
		attrs = append(attrs, attribute.String(FamilyKey, family))
	}
	if kind != "" {
		attrs = append(attrs, attribute.String(RequestKindKey, kind))
	}
	return attrs
}

// AxisAttributes describes a single axis update.
func AxisAttributes(tag string, value float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AxisTagKey, tag),
		attribute.Float64(AxisValueKey, value),
	}
}

// SessionAttributes tags a span with the owning session.
func SessionAttributes(id string) []attribute.KeyValue {
	if id == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String(SessionIDKey, id)}
}

// ErrorAttributes classifies a failed operation.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
