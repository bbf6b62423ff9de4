package market

import "context"

// CatalogSource loads the configuration tables of a game
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}

// CatalogProvider hands out a catalog once it has finished loading.
// Wait blocks until the catalog is ready or ctx is done.
type CatalogProvider interface {
	Wait(ctx context.Context) (*Catalog, error)
}
