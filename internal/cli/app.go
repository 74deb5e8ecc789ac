package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/landwatch/internal/corpus"
	"github.com/ppiankov/landwatch/internal/llm"
	"github.com/ppiankov/landwatch/internal/metrics"
	"github.com/ppiankov/landwatch/internal/model"
	"github.com/ppiankov/landwatch/internal/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app is the state one command invocation works with. Built once per
// command from the resolved config.
type app struct {
	cfg      model.Config
	logger   *zap.Logger
	store    *corpus.Store
	metrics  *metrics.Metrics
	provider llm.Provider
	dbPath   string
}

// newApp loads config and the corpus snapshot. The provider is only
// built when withProvider is set, so corpus commands work offline.
func newApp(withProvider bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		dbPath: util.ExpandHome(cfg.Corpus.Path),
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
	}

	a.store = corpus.New(logger)
	if err := a.store.LoadFile(a.dbPath); err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", a.dbPath, err)
	}
	a.metrics.CorpusSize(a.store.Len())

	if withProvider {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, logger))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrCapabilityUnavailable, err)
		}
		if p != nil {
			a.provider = p
		}
	}
	return a, nil
}

func newLogger(cfg model.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development || verbose {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

// save writes the corpus snapshot back to disk.
func (a *app) save() error {
	if err := a.store.SaveFile(a.dbPath); err != nil {
		return err
	}
	a.metrics.CorpusSize(a.store.Len())
	return nil
}

// close flushes logs and the metrics textfile.
func (a *app) close() {
	if a.cfg.Metrics.Enabled {
		if err := a.metrics.WriteTextfile(util.ExpandHome(a.cfg.Metrics.Textfile)); err != nil {
			a.logger.Warn("metrics.write.failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// requireProvider fails fast when no capability backend is configured.
func (a *app) requireProvider() error {
	if a.provider == nil {
		return fmt.Errorf("no LLM provider configured (set llm.provider or LANDWATCH_LLM_PROVIDER): %w", model.ErrCapabilityUnavailable)
	}
	return nil
}

func stderr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
