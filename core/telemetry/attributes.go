package telemetry

import "go.opentelemetry.io/otel/attribute"

type ModeNum int

func (m ModeNum) String() string {
	switch m {
	case ModeSingleton:
		return "singleton"
	case ModePrototype:
		return "prototype"
	case ModeUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

const (
	ModeUnknown ModeNum = iota
	ModeSingleton
	ModePrototype
)

// Mode marks a span with the production mode of the strategy running it.
func Mode(m ModeNum) attribute.KeyValue {
	return attribute.String("production_mode", m.String())
}

// TargetKind marks a span with the kind of the resolved invocation target,
// "static" or "instance".
func TargetKind(kind string) attribute.KeyValue {
	return attribute.String("target_kind", kind)
}

// InstanceID marks a span with the id of the strategy instance running it.
func InstanceID(id string) attribute.KeyValue {
	return attribute.String("instance_id", id)
}
