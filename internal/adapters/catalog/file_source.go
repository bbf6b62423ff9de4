// Package catalog loads the read-only market, product and event tables that
// parameterise a game. Tables may be JSON or YAML and are checked against
// embedded JSON schemas before they are decoded.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/config"
)

var extensions = []string{".json", ".yaml", ".yml"}

// FileSource reads catalog tables from a directory
type FileSource struct {
	dir       string
	validator *config.Validator
	logger    *slog.Logger
}

// NewFileSource creates a source rooted at dir
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileSource{
		dir:       dir,
		validator: config.NewValidator(),
		logger:    logger,
	}
}

// Dir returns the directory tables are read from
func (s *FileSource) Dir() string {
	return s.dir
}

// Load reads the three tables concurrently and assembles a catalog.
// Any missing or malformed table fails the whole load.
func (s *FileSource) Load(ctx context.Context) (*market.Catalog, error) {
	start := time.Now()
	tables := make([]table, len(Tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range Tables {
		g.Go(func() error {
			t, err := s.readTable(gctx, name)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := s.build(tables)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "catalog tables loaded",
		slog.String("dir", s.dir),
		slog.Int("markets", len(c.Markets)),
		slog.Int("products", len(c.Products)),
		slog.Int("events", len(c.Events)),
		slog.String("digest", c.Digest),
		slog.Duration("elapsed", time.Since(start)))
	return c, nil
}

func (s *FileSource) readTable(ctx context.Context, name string) (table, error) {
	if err := ctx.Err(); err != nil {
		return table{}, err
	}

	path, err := s.locate(name)
	if err != nil {
		return table{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return table{}, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := parseDocument(path, raw)
	if err != nil {
		return table{}, err
	}

	schema, err := compileSchema(name)
	if err != nil {
		return table{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return table{}, fmt.Errorf("%s: schema violation: %w", path, err)
	}

	canonical, err := json.Marshal(doc)
	if err != nil {
		return table{}, fmt.Errorf("%s: %w", path, err)
	}
	return table{name: name, path: path, json: canonical}, nil
}

func (s *FileSource) locate(name string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(s.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w: %s in %s", market.ErrMissingTable, name, s.dir)
}

// parseDocument decodes raw into the generic JSON value model the schema
// validator expects. YAML documents are routed through JSON so both formats
// produce identical values.
func parseDocument(path string, raw []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: yaml is not representable as json: %w", path, err)
		}
		raw = b
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (s *FileSource) build(tables []table) (*market.Catalog, error) {
	var (
		markets map[market.MarketID]market.Market
		cfg     configTable
		events  eventsTable
	)
	if err := tables[0].decode(&markets); err != nil {
		return nil, err
	}
	if err := tables[1].decode(&cfg); err != nil {
		return nil, err
	}
	if err := tables[2].decode(&events); err != nil {
		return nil, err
	}

	c := market.NewCatalog(markets, cfg.Products, events.Events, cfg.Scoring)
	if err := s.validate(c); err != nil {
		return nil, err
	}
	c.Digest = digest(tables)
	return c, nil
}

// validate applies the struct rules the schemas cannot express
func (s *FileSource) validate(c *market.Catalog) error {
	for _, id := range c.MarketIDs() {
		if err := s.validator.Validate(c.Markets[id]); err != nil {
			return fmt.Errorf("market %s: %w", id, err)
		}
	}
	for _, id := range c.ProductIDs() {
		if err := s.validator.Validate(c.Products[id]); err != nil {
			return fmt.Errorf("product %s: %w", id, err)
		}
	}

	seen := make(map[string]bool, len(c.Events))
	for _, ev := range c.Events {
		if seen[ev.ID] {
			return fmt.Errorf("event %s: duplicate id", ev.ID)
		}
		seen[ev.ID] = true
		if err := s.validator.Validate(ev); err != nil {
			return fmt.Errorf("event %s: %w", ev.ID, err)
		}
	}
	return nil
}

func digest(tables []table) string {
	h := sha256.New()
	for _, t := range tables {
		h.Write([]byte(t.name))
		h.Write([]byte{0})
		h.Write(t.json)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
