package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
)

// PrometheusMiddleware records duration and outcome of every request.
// Requests are labelled by their bare type name, so
// "*commands.ProcessRoundCommand" becomes "ProcessRoundCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordRequest(common.RequestName(request), time.Since(start), err)

		return response, err
	}
}
