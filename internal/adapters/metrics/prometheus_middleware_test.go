package metrics_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/adapters/metrics"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

type FinishCommand struct{ Err error }

type StatusQuery struct{}

type stubHandler struct{}

func (stubHandler) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	if cmd, ok := request.(*FinishCommand); ok {
		return nil, cmd.Err
	}
	return struct{}{}, nil
}

func TestPrometheusMiddleware_LabelsOutcome(t *testing.T) {
	metrics.InitRegistry("mercado_test")
	t.Cleanup(metrics.Reset)

	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	m := mediator.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(collector))
	require.NoError(t, mediator.RegisterHandler[*FinishCommand](m, stubHandler{}))
	require.NoError(t, mediator.RegisterHandler[*StatusQuery](m, stubHandler{}))

	ctx := context.Background()
	_, _ = m.Send(ctx, &FinishCommand{})
	_, _ = m.Send(ctx, &FinishCommand{Err: &game.ValidationFailure{}})
	_, _ = m.Send(ctx, &FinishCommand{Err: errors.New("boom")})
	_, _ = m.Send(ctx, &StatusQuery{})
	_, _ = m.Send(ctx, &StatusQuery{})

	expected := `
# HELP mercado_test_mediator_requests_total Requests handled by request, kind and outcome
# TYPE mercado_test_mediator_requests_total counter
mercado_test_mediator_requests_total{kind="command",request="FinishCommand",status="error"} 1
mercado_test_mediator_requests_total{kind="command",request="FinishCommand",status="rejected"} 1
mercado_test_mediator_requests_total{kind="command",request="FinishCommand",status="success"} 1
mercado_test_mediator_requests_total{kind="query",request="StatusQuery",status="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(metrics.GetRegistry(), strings.NewReader(expected),
		"mercado_test_mediator_requests_total"))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	m := mediator.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(nil))
	require.NoError(t, mediator.RegisterHandler[*StatusQuery](m, stubHandler{}))

	_, err := m.Send(context.Background(), &StatusQuery{})
	require.NoError(t, err)
}
