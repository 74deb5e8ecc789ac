package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ppiankov/landwatch/internal/cache"
	"github.com/ppiankov/landwatch/internal/model"
	"github.com/ppiankov/landwatch/internal/pipeline"
	"github.com/ppiankov/landwatch/internal/worker"
	"github.com/spf13/cobra"
)

var (
	textLabel     string
	textFile      string
	ingestWorkers int
	noTranslate   bool
	noCache       bool
	ingestTimeout time.Duration
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [image...]",
	Short: "Extract records from scanned notices and add them to the corpus",
	Long: `Ingest runs each notice through OCR, translation to English (for Hindi
and Marathi notices) and structured extraction, then stores the record
in the corpus under the file name. A notice that fails at any step is
reported and skipped; the others are still stored.

Pasted text skips OCR. Give it a label with --text-label and the text
with --text-file (use - for stdin). The label becomes the key, with
".txt" appended.

Example:
  landwatch ingest notice1.jpg notice2.png
  landwatch ingest --text-label kashi --text-file notice.txt
  pbpaste | landwatch ingest --text-label kashi --text-file -`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&textLabel, "text-label", "", "label for a pasted text notice")
	ingestCmd.Flags().StringVar(&textFile, "text-file", "", "file holding a text notice (- for stdin)")
	ingestCmd.Flags().IntVar(&ingestWorkers, "concurrency", 0, "units processed at once (default from config)")
	ingestCmd.Flags().BoolVar(&noTranslate, "no-translate", false, "skip translation of Hindi and Marathi text")
	ingestCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable OCR and translation caching")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 0, "timeout per notice (default from config)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	units, err := collectUnits(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	cfg := a.cfg
	if ingestWorkers > 0 {
		cfg.Ingest.Concurrency = ingestWorkers
	}
	if ingestTimeout > 0 {
		cfg.Ingest.Timeout = ingestTimeout
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	c := cache.FromConfig(cfg.Cache)
	p := pipeline.New(pipeline.Options{
		Provider:      a.provider,
		Cache:         c,
		Limiter:       worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.Burst),
		Store:         a.store,
		Metrics:       a.metrics,
		Logger:        a.logger,
		Concurrency:   cfg.Ingest.Concurrency,
		UnitTimeout:   cfg.Ingest.Timeout,
		SkipTranslate: noTranslate || !cfg.Ingest.Translate,
	})
	if err := p.Check(); err != nil {
		return err
	}

	stderr("Processing %d notice(s) with %s...\n", len(units), a.provider.Name())
	results := p.ProcessBatch(context.Background(), units)

	stored := 0
	for _, r := range results {
		if r.Succeeded() {
			stored++
			stderr("✓ %s (%s)\n", r.Key, r.Duration.Round(time.Millisecond))
			if verbose && r.Notice != nil {
				stderr("    %s\n", r.Notice.PropertyDetails.Address.Format())
			}
			continue
		}
		stderr("✗ %s: failed at %s: %v\n", r.Key, r.FailedAt, r.Err)
	}

	if stored > 0 {
		if err := a.save(); err != nil {
			return fmt.Errorf("save corpus: %w", err)
		}
	}
	stderr("\nStored %d of %d notice(s). Corpus now holds %d record(s): %s\n", stored, len(results), a.store.Len(), a.dbPath)
	if r, ok := c.(cache.Reporter); ok {
		if line := cacheSummary(r.Stats()); line != "" {
			stderr("%s\n", line)
		}
	}

	if stored < len(results) {
		return fmt.Errorf("%d notice(s) failed", len(results)-stored)
	}
	return nil
}

func collectUnits(paths []string, stdin io.Reader) ([]model.Unit, error) {
	var units []model.Unit
	for _, path := range paths {
		u, err := pipeline.LoadImageUnit(path)
		if err != nil {
			u = pipeline.RejectedUnit(path, err)
		}
		units = append(units, u)
	}

	if textFile != "" || textLabel != "" {
		var (
			data []byte
			err  error
		)
		switch textFile {
		case "":
			return nil, fmt.Errorf("--text-label needs --text-file")
		case "-":
			data, err = io.ReadAll(stdin)
		default:
			data, err = os.ReadFile(textFile)
		}
		if err != nil {
			return nil, fmt.Errorf("read text notice: %w", err)
		}
		u, err := pipeline.TextUnit(textLabel, string(data))
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("nothing to ingest: pass image files or --text-label with --text-file")
	}
	return units, nil
}

// cacheSummary renders lookup counts, or "" when nothing was looked up.
func cacheSummary(s cache.Stats) string {
	if s.Lookups() == 0 {
		return ""
	}
	return fmt.Sprintf("Cache: %d memory hit(s), %d disk hit(s), %d miss(es)", s.MemoryHits, s.DiskHits, s.Misses)
}
