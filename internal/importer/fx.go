package importer

import (
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/smallbiznis/tipfolio/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("importer",
	fx.Provide(NewExecutor),
	fx.Provide(func(e *Executor, m *metrics.ImportMetrics, clk clock.Clock) *Orchestrator {
		return NewOrchestrator(e, m, clk)
	}),
)
