// SPDX-License-Identifier: MIT
package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestTypefaceAttributes(t *testing.T) {
	tests := []struct {
		name    string
		family  string
		kind    string
		wantLen int
	}{
		{"family and kind", "Roboto Flex", "variable", 2},
		{"family only", "Lora", "", 1},
		{"empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := TypefaceAttributes(tt.family, tt.kind)
			if len(attrs) != tt.wantLen {
				t.Fatalf("Expected %d attributes, got %d", tt.wantLen, len(attrs))
			}
			if tt.family != "" {
				verifyAttribute(t, attrs, FamilyKey, attribute.StringValue(tt.family))
			}
		})
	}
}

func TestAxisAttributes(t *testing.T) {
	attrs := AxisAttributes("wght", 650)
	verifyAttribute(t, attrs, AxisTagKey, attribute.StringValue("wght"))
	verifyAttribute(t, attrs, AxisValueKey, attribute.Float64Value(650))
}

func TestSessionAttributes(t *testing.T) {
	if attrs := SessionAttributes(""); attrs != nil {
		t.Errorf("Expected no attributes for empty id, got %v", attrs)
	}
	verifyAttribute(t, SessionAttributes("abc"), SessionIDKey, attribute.StringValue("abc"))
}

func TestErrorAttributes(t *testing.T) {
	attrs := ErrorAttributes("unknown_axis")
	verifyAttribute(t, attrs, ErrorKey, attribute.BoolValue(true))
	verifyAttribute(t, attrs, ErrorTypeKey, attribute.StringValue("unknown_axis"))
}

func verifyAttribute(t *testing.T, attrs []attribute.KeyValue, key string, want attribute.Value) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value != want {
				t.Errorf("Expected %s=%v, got %v", key, want.Emit(), attr.Value.Emit())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}
