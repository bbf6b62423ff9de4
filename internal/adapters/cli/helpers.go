package cli

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"

	"github.com/andrescamacho/mercado-go/internal/adapters/metrics"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/infrastructure/config"
)

// resolveGameID resolves the game from flags or defaults
// Priority: --game flag > user config default
func resolveGameID() (string, error) {
	if gameID != "" {
		return gameID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no game specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no game specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultGameID != "" {
		return userCfg.DefaultGameID, nil
	}

	return "", fmt.Errorf("no game specified: use --game, or set a default with 'mercado config set-game'")
}

// parseProduction parses product=quantity pairs
func parseProduction(values []string) (map[market.ProductID]int, error) {
	out := make(map[market.ProductID]int, len(values))
	for _, v := range values {
		product, qty, ok := strings.Cut(v, "=")
		if !ok || product == "" {
			return nil, fmt.Errorf("invalid production %q: expected product=quantity", v)
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("invalid production quantity in %q: %w", v, err)
		}
		out[market.ProductID(product)] = n
	}
	return out, nil
}

// parseMarketEntries parses market:product:price[:advertising] entries
func parseMarketEntries(values []string) (map[market.MarketID]economy.MarketDecision, error) {
	out := make(map[market.MarketID]economy.MarketDecision, len(values))
	for _, v := range values {
		parts := strings.Split(v, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, fmt.Errorf("invalid market entry %q: expected market:product:price[:advertising]", v)
		}

		price, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price in %q: %w", v, err)
		}
		advertising := 0.0
		if len(parts) == 4 {
			if advertising, err = strconv.ParseFloat(parts[3], 64); err != nil {
				return nil, fmt.Errorf("invalid advertising in %q: %w", v, err)
			}
		}

		out[market.MarketID(parts[0])] = economy.MarketDecision{
			Active:      true,
			Product:     market.ProductID(parts[1]),
			Price:       price,
			Advertising: advertising,
		}
	}
	return out, nil
}

func printResults(results []game.PlayerRoundResult) {
	for _, r := range results {
		fmt.Printf("\n%s (player %d)\n", r.PlayerName, r.PlayerID)
		fmt.Printf("  Produced:        %d units\n", r.Results.UnitsProduced)
		fmt.Printf("  Sold:            %d units\n", r.Results.UnitsSold)
		for _, id := range sortedKeys(r.Results.Markets) {
			sale := r.Results.Markets[id]
			fmt.Printf("    %-14s %5d / %-5d %-10s @ %.2f = %.2f\n",
				id, sale.UnitsSold, sale.Demand, sale.Product, sale.Price, sale.Revenue)
		}
		fmt.Printf("  Revenue:         %.2f\n", r.Results.TotalRevenue())
		fmt.Printf("  Costs:           %.2f (production %.2f, transport %.2f, advertising %.2f)\n",
			r.Results.Costs.Total(), r.Results.Costs.Production,
			r.Results.Costs.TotalTransport(), r.Results.Costs.Advertising)
		fmt.Printf("  Profit:          %.2f\n", r.Results.Profit)
		fmt.Printf("  Cash:            %.2f\n", r.Cash)
		fmt.Printf("  Round score:     %d\n", r.Score)
	}
}

func printStandings(standings []*game.Player) {
	fmt.Println("\nStandings:")
	for i, p := range standings {
		fmt.Printf("  %d. %-20s score %-6d cash %.2f\n", i+1, p.Name, p.TotalScore, p.Cash)
	}
}

func printViolations(violations []game.PlayerViolations) {
	for _, v := range violations {
		fmt.Printf("  %s (player %d):\n", v.PlayerName, v.PlayerID)
		for _, msg := range v.Messages {
			fmt.Printf("    - %s\n", msg)
		}
	}
}

func printEvents(label string, events []market.ActiveEvent) {
	if len(events) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, ev := range events {
		fmt.Printf("  %-24s %-24s rounds %d-%d\n", ev.ID, ev.Type, ev.StartRound, ev.EndRound)
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	ids := make([]K, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// printMetrics writes every gathered sample to stderr
func printMetrics() {
	registry := metrics.GetRegistry()
	if registry == nil {
		fmt.Fprintln(os.Stderr, "metrics are disabled (set metrics.enabled)")
		return
	}

	families, err := registry.Gather()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to gather metrics: %v\n", err)
		return
	}

	fmt.Fprintln(os.Stderr, "\nMetrics:")
	for _, family := range families {
		for _, m := range family.GetMetric() {
			fmt.Fprintf(os.Stderr, "  %s%s %s\n", family.GetName(), formatLabels(m.GetLabel()), formatSample(family.GetType(), m))
		}
	}
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatSample(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return strconv.FormatFloat(m.GetCounter().GetValue(), 'g', -1, 64)
	case dto.MetricType_GAUGE:
		return strconv.FormatFloat(m.GetGauge().GetValue(), 'g', -1, 64)
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}

// maskPassword hides the password of a database URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable url)"
	}
	return u.Redacted()
}
