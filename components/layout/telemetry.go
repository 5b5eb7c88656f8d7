package layout

import (
	"context"

	"go.uber.org/zap"
)

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// ZapTelemetry writes layout events to a zap logger at debug level.
type ZapTelemetry struct {
	Logger *zap.Logger
}

// Record implements Telemetry.
func (z ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	if z.Logger == nil {
		return
	}
	fields := make([]zap.Field, 0, len(payload))
	for key, value := range payload {
		fields = append(fields, zap.Any(key, value))
	}
	z.Logger.Debug(event, fields...)
}
