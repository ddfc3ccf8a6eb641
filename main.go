// Command mailprep turns a raw email archive into normalized text records and
// fits a TF-IDF vocabulary over them.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/emurenMRz/mailprep/internal/config"
	"github.com/emurenMRz/mailprep/internal/corpus"
	"github.com/emurenMRz/mailprep/internal/pipeline"
	"github.com/emurenMRz/mailprep/internal/textnorm"
	"github.com/emurenMRz/mailprep/internal/tfidf"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML configuration file (optional)")
		path       = flag.String("path", "", "maildir directory or mbox file (overrides config)")
		format     = flag.String("format", "", "archive format: maildir or mbox (overrides config)")
		stages     = flag.String("stages", "", "comma separated stages: entities, nouns, strip, stem (overrides config)")
		recordsOut = flag.String("out", "", "write processed records as JSON lines to this file (overrides config)")
		vocabOut   = flag.String("vocab", "", "write the fitted vocabulary to this file (overrides config)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, *path, *format, *stages, *recordsOut, *vocabOut)

	setupLogger(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("mailprep failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	msgs, err := corpus.Load(cfg.Input.Path, cfg.Input.Format)
	if err != nil {
		return err
	}
	slog.Info("corpus loaded", "path", cfg.Input.Path, "messages", len(msgs))

	p, err := newPipeline(cfg.Pipeline)
	if err != nil {
		return err
	}
	records, err := p.Process(ctx, msgs)
	if err != nil {
		return err
	}

	model, err := tfidf.Fit(pipeline.Texts(records), tfidf.Params{
		MaxFeatures: cfg.Features.MaxFeatures,
		MaxDF:       cfg.Features.MaxDF,
		MinDF:       cfg.Features.MinDF,
	})
	if err != nil {
		return fmt.Errorf("failed to fit features: %w", err)
	}
	params := model.Params()
	slog.Info("features fitted",
		"documents", model.Documents(),
		"vocabulary", model.Len(),
		"max_features", params.MaxFeatures,
		"max_df", params.MaxDF,
		"min_df", params.MinDF,
	)

	if cfg.Output.Records != "" {
		if err := writeRecords(cfg.Output.Records, records); err != nil {
			return err
		}
		slog.Info("records written", "path", cfg.Output.Records)
	}
	if cfg.Output.Vocabulary != "" {
		if err := writeVocabulary(cfg.Output.Vocabulary, model); err != nil {
			return err
		}
		slog.Info("vocabulary written", "path", cfg.Output.Vocabulary)
	}
	return nil
}

func newPipeline(cfg config.PipelineConfig) (*pipeline.Pipeline, error) {
	stages, err := pipeline.ParseStages(cfg.Stages)
	if err != nil {
		return nil, err
	}
	mode, err := textnorm.ParseStemMode(cfg.StemMode)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{Stages: stages, StemMode: mode, Workers: cfg.Workers}
	for _, s := range stages {
		if s == pipeline.StageEntities || s == pipeline.StageNouns {
			if opts.Model, err = textnorm.LoadModel(); err != nil {
				return nil, err
			}
			break
		}
	}
	return pipeline.New(opts)
}

func writeRecords(path string, records []pipeline.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create records file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r.Index, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}
	return f.Close()
}

// writeVocabulary writes one "term<TAB>idf" line per term in dimension order.
func writeVocabulary(path string, model *tfidf.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, term := range model.Vocabulary() {
		idf, _ := model.IDF(term)
		fmt.Fprintf(w, "%s\t%.6f\n", term, idf)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write vocabulary file: %w", err)
	}
	return f.Close()
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// applyFlags overrides configuration with non-empty command line values.
func applyFlags(cfg *config.Config, path, format, stages, records, vocab string) {
	if path != "" {
		cfg.Input.Path = path
	}
	if format != "" {
		cfg.Input.Format = format
	}
	if stages != "" {
		cfg.Pipeline.Stages = strings.Split(stages, ",")
	}
	if records != "" {
		cfg.Output.Records = records
	}
	if vocab != "" {
		cfg.Output.Vocabulary = vocab
	}
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
