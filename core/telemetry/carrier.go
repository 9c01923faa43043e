package telemetry

import (
	"go.opentelemetry.io/otel/propagation"
)

// PackCarrier flattens a trace carrier into a plain string map that a
// hosting container can hand over alongside setup parameters.
func PackCarrier(traceCarrier propagation.MapCarrier) map[string]string {
	m := make(map[string]string)
	for _, k := range traceCarrier.Keys() {
		m[k] = traceCarrier.Get(k)
	}

	return m
}

// UnpackCarrier restores a trace carrier from a plain string map.
func UnpackCarrier(m map[string]string) propagation.MapCarrier {
	traceCarrier := propagation.MapCarrier{}
	for k, v := range m {
		traceCarrier.Set(k, v)
	}

	return traceCarrier
}
