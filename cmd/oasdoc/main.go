package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/oasdoc/internal/config"
	"github.com/nieomylnieja/oasdoc/internal/pathutils"
	"github.com/nieomylnieja/oasdoc/pkg/oasdoc"
)

const appName = "oasdoc"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	switch {
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case err != nil:
		slog.Error("documentation generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := setupLogger(stderr, cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	if cliCfg.ConfigDoc {
		return printConfigReference(stdout)
	}

	cfg, err := loadConfig(cliCfg, logger)
	if err != nil {
		return err
	}

	input, err := os.ReadFile(cfg.Input)
	if err != nil {
		return errors.Wrap(err, "failed to read input document")
	}
	sources := make([]oasdoc.Source, 0, len(cfg.APIs))
	for _, api := range cfg.APIs {
		sources = append(sources, oasdoc.Source{Name: api.Name, Path: api.Path})
	}
	// The document is rendered in memory first, so that nothing is written on failure.
	var rendered bytes.Buffer
	err = oasdoc.Generate(ctx, bytes.NewReader(input), &rendered,
		oasdoc.WithSources(sources...),
		oasdoc.WithLogger(logger),
		oasdoc.WithStrictValidation(cfg.Strict()),
		oasdoc.WithSelectors(cfg.Selectors.SummaryTable, cfg.Selectors.CallerTable, cfg.Selectors.DetailSection),
		oasdoc.WithHiddenProperties(cfg.HiddenProperties...),
	)
	if err != nil {
		return err
	}
	return writeOutput(cfg.Output, rendered.Bytes(), stdout, logger)
}

// loadConfig reads the configuration file, if there's one, and applies the flags on top of it.
func loadConfig(cliCfg *cliConfig, logger *slog.Logger) (config.Config, error) {
	path := cliCfg.ConfigPath
	if path == "" {
		found, err := pathutils.FindFileFromWorkingDir(config.FileName)
		switch {
		case errors.Is(err, pathutils.ErrNotFound):
			logger.Debug("configuration file not found, using defaults")
		case err != nil:
			return config.Config{}, err
		default:
			path = found
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
		logger.Debug("loaded configuration", slog.String("path", path))
	}
	if cliCfg.Input != "" {
		cfg.Input = cliCfg.Input
	}
	if cliCfg.Output != "" {
		cfg.Output = cliCfg.Output
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func writeOutput(path string, data []byte, stdout io.Writer, logger *slog.Logger) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return errors.Wrap(err, "failed to write rendered document")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write rendered document to %s", path)
	}
	logger.Info("rendered document written", slog.String("path", path))
	return nil
}

func printConfigReference(w io.Writer) error {
	doc, err := config.Reference()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "failed to encode configuration reference")
}
