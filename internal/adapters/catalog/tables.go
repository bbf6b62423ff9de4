package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// Table names as they appear on disk, without extension
const (
	TableMarkets = "markets"
	TableConfig  = "config"
	TableEvents  = "events"
)

// Tables lists every table a catalog is built from
var Tables = []string{TableMarkets, TableConfig, TableEvents}

type configTable struct {
	Products map[market.ProductID]market.Product `json:"products"`
	Scoring  market.ScoringWeights               `json:"scoring"`
}

type eventsTable struct {
	Events []market.EventTemplate `json:"events"`
}

// table is one configuration file, normalised to canonical JSON
type table struct {
	name string
	path string
	json []byte
}

func (t table) decode(out any) error {
	if err := json.Unmarshal(t.json, out); err != nil {
		return fmt.Errorf("%s: %w", t.path, err)
	}
	return nil
}
