package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/landwatch/internal/llm"
	"github.com/ppiankov/landwatch/internal/metrics"
	"github.com/ppiankov/landwatch/internal/search"
	"github.com/ppiankov/landwatch/internal/worker"
	"github.com/spf13/cobra"
)

var (
	topN          int
	searchJSON    bool
	searchTimeout time.Duration
	criteria      search.Criteria
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find corpus records by free text or by field",
	Long: `Search asks the LLM which corpus records match, then keeps only keys
that actually exist in the corpus.

Give either a free-text query or one or more field flags.

Example:
  landwatch search "Flat 202, Khar West, Mumbai"
  landwatch search --city Pune --type Flat
  landwatch search --building Rajdoot --top 5 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&topN, "top", 0, "maximum results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print matching records as JSON")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 2*time.Minute, "search timeout")

	f := searchCmd.Flags()
	f.StringVar(&criteria.FlatOrApartmentNumbers, "flat", "", "flat or apartment number, e.g. \"Flat No. 202\"")
	f.StringVar(&criteria.OfficeOrShopNumbers, "shop", "", "office or shop number, e.g. \"Shop No. 5\"")
	f.StringVar(&criteria.BuildingName, "building", "", "building name, e.g. Rajdoot")
	f.StringVar(&criteria.SocietyOrComplexName, "society", "", "society or complex name")
	f.StringVar(&criteria.StreetOrRoadOrMarg, "street", "", "street or road, e.g. \"Linking Road\"")
	f.StringVar(&criteria.LocalityOrAreaOrNeighbourhood, "locality", "", "locality or area, e.g. \"Khar West\"")
	f.StringVar(&criteria.City, "city", "", "city, e.g. Mumbai")
	f.StringVar(&criteria.PinCode, "pin", "", "pin code, e.g. 400052")
	f.StringVar(&criteria.TypeOfProperty, "type", "", "property type, e.g. Flat, Shop, Land")
	f.StringVar(&criteria.SurveyOrCSOrCTSNumber, "survey", "", "survey or CTS number, e.g. \"CTS No. E/525\"")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	byFields := len(criteria.Filtered()) > 0
	switch {
	case query != "" && byFields:
		return fmt.Errorf("give either a query or field flags, not both")
	case strings.TrimSpace(query) == "" && !byFields:
		return fmt.Errorf("enter a search query or at least one field flag")
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if a.store.Len() == 0 {
		stderr("Corpus is empty. Ingest notices or run 'landwatch corpus reset' to load the sample.\n")
		return nil
	}
	if err := a.requireProvider(); err != nil {
		return err
	}

	n := a.cfg.Search.TopN
	if topN > 0 {
		n = topN
	}

	limiter := worker.NewLimiter(a.cfg.RateLimiting.RequestsPerSecond, a.cfg.RateLimiting.Burst)
	provider := metrics.Instrument(a.provider, a.metrics, worker.KeySearch)
	engine := search.NewEngine(llm.WithLimit(provider, limiter, worker.KeySearch), a.logger)

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	var keys []string
	kind := "free_text"
	if byFields {
		kind = "criteria"
		keys, err = engine.ByCriteria(ctx, criteria, a.store, n)
	} else {
		keys, err = engine.FreeText(ctx, query, a.store, n)
	}
	a.metrics.Search(kind, err)
	if err != nil {
		return fmt.Errorf("no results: %w", err)
	}

	return printResults(keys, a)
}

func printResults(keys []string, a *app) error {
	if searchJSON {
		ordered := make([]map[string]any, 0, len(keys))
		for _, k := range keys {
			n, _ := a.store.Get(k)
			ordered = append(ordered, map[string]any{"key": k, "record": n})
		}
		b, err := json.MarshalIndent(ordered, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	if len(keys) == 0 {
		fmt.Println("No matching properties found")
		return nil
	}
	fmt.Printf("Found %d matching properties\n\n", len(keys))
	for i, k := range keys {
		n, _ := a.store.Get(k)
		fmt.Printf("%d. %s\n", i+1, k)
		printSummary(n)
		fmt.Println()
	}
	return nil
}
