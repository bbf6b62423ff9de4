package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

const marketsJSON = `{
  "national": {"name": "National", "baseDemand": 500, "priceSensitivity": 1, "advertisingSensitivity": 1, "qualitySensitivity": 1, "transportCost": 2}
}`

const configJSON = `{
  "products": {
    "basic": {"name": "Basic", "productionCost": 30, "quality": 5, "minPrice": 50, "maxPrice": 150}
  },
  "scoring": {"cashWeight": 0.4, "marketShareWeight": 0.3, "inventoryWeight": 0.1, "reputationWeight": 0.2}
}`

const eventsJSON = `{
  "events": [
    {"id": "boom", "name": "Boom", "type": "market_demand", "effect": {"national": 0.5}, "duration": 2}
  ]
}`

const marketsYAML = `
national:
  name: National
  baseDemand: 500
  priceSensitivity: 1
  advertisingSensitivity: 1
  qualitySensitivity: 1
  transportCost: 2
`

const eventsYAML = `
events:
  - id: boom
    name: Boom
    type: market_demand
    effect:
      national: 0.5
    duration: 2
`

func writeTables(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestFileSource_LoadsBundledTables(t *testing.T) {
	src := catalog.NewFileSource(filepath.Join("..", "..", "..", "data"), nil)

	c, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []market.MarketID{"international", "national", "regional"}, c.MarketIDs())
	assert.Equal(t, []market.ProductID{"basic", "deluxe", "premium"}, c.ProductIDs())
	assert.NotEmpty(t, c.Events)
	assert.NotEmpty(t, c.Digest)
	for _, ev := range c.Events {
		assert.True(t, ev.Type.IsValid(), ev.ID)
	}
}

func TestFileSource_LoadJSON(t *testing.T) {
	dir := writeTables(t, map[string]string{
		"markets.json": marketsJSON,
		"config.json":  configJSON,
		"events.json":  eventsJSON,
	})

	c, err := catalog.NewFileSource(dir, nil).Load(context.Background())

	require.NoError(t, err)
	national, ok := c.Market("national")
	require.True(t, ok)
	assert.Equal(t, market.MarketID("national"), national.ID)
	assert.Equal(t, 500.0, national.BaseDemand)
	basic, ok := c.Product("basic")
	require.True(t, ok)
	assert.Equal(t, 150.0, basic.MaxPrice)
	assert.Equal(t, 0.4, c.Scoring.CashWeight)
	boom := c.FindEvent("boom")
	require.NotNil(t, boom)
	assert.Equal(t, 2, boom.Duration)
}

func TestFileSource_YAMLAndJSONProduceSameDigest(t *testing.T) {
	jsonDir := writeTables(t, map[string]string{
		"markets.json": marketsJSON,
		"config.json":  configJSON,
		"events.json":  eventsJSON,
	})
	yamlDir := writeTables(t, map[string]string{
		"markets.yaml": marketsYAML,
		"config.json":  configJSON,
		"events.yml":   eventsYAML,
	})

	fromJSON, err := catalog.NewFileSource(jsonDir, nil).Load(context.Background())
	require.NoError(t, err)
	fromYAML, err := catalog.NewFileSource(yamlDir, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Digest, fromYAML.Digest)
	assert.Equal(t, fromJSON.Markets, fromYAML.Markets)
	assert.Equal(t, fromJSON.Events, fromYAML.Events)
}

func TestFileSource_MissingTable(t *testing.T) {
	dir := writeTables(t, map[string]string{
		"markets.json": marketsJSON,
		"config.json":  configJSON,
	})

	_, err := catalog.NewFileSource(dir, nil).Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, market.ErrMissingTable)
	assert.Contains(t, err.Error(), "events")
}

func TestFileSource_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "negative base demand",
			files: map[string]string{
				"markets.json": `{"national": {"name": "N", "baseDemand": -1, "priceSensitivity": 1, "advertisingSensitivity": 1, "qualitySensitivity": 1, "transportCost": 2}}`,
				"config.json":  configJSON,
				"events.json":  eventsJSON,
			},
			wantErr: "schema violation",
		},
		{
			name: "unknown event type",
			files: map[string]string{
				"markets.json": marketsJSON,
				"config.json":  configJSON,
				"events.json":  `{"events": [{"id": "x", "type": "weather", "effect": {}, "duration": 1}]}`,
			},
			wantErr: "schema violation",
		},
		{
			name: "missing scoring",
			files: map[string]string{
				"markets.json": marketsJSON,
				"config.json":  `{"products": {"basic": {"name": "B", "productionCost": 1, "quality": 1, "minPrice": 1, "maxPrice": 2}}}`,
				"events.json":  eventsJSON,
			},
			wantErr: "schema violation",
		},
		{
			name: "inverted price range",
			files: map[string]string{
				"markets.json": marketsJSON,
				"config.json":  `{"products": {"basic": {"name": "B", "productionCost": 1, "quality": 1, "minPrice": 200, "maxPrice": 100}}, "scoring": {"cashWeight": 1, "marketShareWeight": 0, "inventoryWeight": 0, "reputationWeight": 0}}`,
				"events.json":  eventsJSON,
			},
			wantErr: "product basic",
		},
		{
			name: "duplicate event id",
			files: map[string]string{
				"markets.json": marketsJSON,
				"config.json":  configJSON,
				"events.json":  `{"events": [{"id": "a", "type": "market_demand", "effect": {}, "duration": 1}, {"id": "a", "type": "transport_cost", "effect": {}, "duration": 1}]}`,
			},
			wantErr: "duplicate",
		},
		{
			name: "malformed json",
			files: map[string]string{
				"markets.json": `{"national": `,
				"config.json":  configJSON,
				"events.json":  eventsJSON,
			},
			wantErr: "markets.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTables(t, tt.files)

			_, err := catalog.NewFileSource(dir, nil).Load(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileSource_CancelledContext(t *testing.T) {
	dir := writeTables(t, map[string]string{
		"markets.json": marketsJSON,
		"config.json":  configJSON,
		"events.json":  eventsJSON,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.NewFileSource(dir, nil).Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
