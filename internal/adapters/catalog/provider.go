package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// Provider loads a catalog once in the background and hands it out to
// waiters. A failed load is final for the lifetime of the provider.
type Provider struct {
	source market.CatalogSource
	logger *slog.Logger

	once  sync.Once
	ready chan struct{}

	catalog *market.Catalog
	err     error
}

// NewProvider creates a provider backed by source. Loading starts on the
// first call to Start or Wait.
func NewProvider(source market.CatalogSource, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		source: source,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Start begins loading. Only the first call has an effect.
func (p *Provider) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.load(ctx)
	})
}

func (p *Provider) load(ctx context.Context) {
	defer close(p.ready)

	start := time.Now()
	p.catalog, p.err = p.source.Load(ctx)
	if p.err != nil {
		p.logger.ErrorContext(ctx, "catalog load failed", slog.Any("error", p.err))
		return
	}
	p.logger.InfoContext(ctx, "catalog ready",
		slog.String("digest", p.catalog.Digest),
		slog.Duration("elapsed", time.Since(start)))
}

// Ready is closed once loading has finished, successfully or not
func (p *Provider) Ready() <-chan struct{} {
	return p.ready
}

// Wait blocks until the catalog is loaded or ctx is done. Both a failed load
// and cancellation surface as ConfigurationUnavailableError.
func (p *Provider) Wait(ctx context.Context) (*market.Catalog, error) {
	// Loading outlives the first waiter
	p.Start(context.WithoutCancel(ctx))

	select {
	case <-p.ready:
		if p.err != nil {
			return nil, market.NewConfigurationUnavailableError(p.err)
		}
		return p.catalog, nil
	case <-ctx.Done():
		return nil, market.NewConfigurationUnavailableError(ctx.Err())
	}
}
