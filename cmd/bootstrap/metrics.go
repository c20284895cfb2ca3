package bootstrap

import (
	"shareit/internal/pkg/metrics"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Invoke(metrics.Register),
)
