package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	mdprint "github.com/alnah/go-mdprint"
	"github.com/alnah/go-mdprint/internal/config"
)

// runConvertCmd parses flags, runs the conversion and returns an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, inputs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	log := newLogger(env.Stderr, flags.common.verbose, env.IsTerminal(env.Stderr))
	defer func() { _ = log.Sync() }()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, inputs, flags, env, log); err != nil {
		var be *batchError
		if errors.As(err, &be) {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
		} else {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, env))
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, inputs []string, flags *convertFlags, env *Environment, log *zap.Logger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}
	envCfg := loadEnvConfig(env.Getenv)

	// Config file < environment < flags
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(inputs) == 0 {
		return ErrNoInput
	}

	pdf := strings.EqualFold(cfg.Output.Format, "pdf") ||
		strings.EqualFold(filepath.Ext(flags.output.path), extPDF)
	target, err := resolveOutputTarget(flags.output.path, cfg.Output.DefaultDir, pdf)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputs, target)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	if files[0].OutputPath == "" {
		if pdf && env.IsTerminal(env.Stdout) {
			return fmt.Errorf("%w: use -o or redirect stdout", ErrTerminalOutput)
		}
		if flags.watch {
			return fmt.Errorf("%w: --watch needs an output file or directory", ErrOutputTarget)
		}
	}

	opts, err := converterOptions(cfg, log)
	if err != nil {
		return err
	}
	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}
	params, err := buildParams(cfg, flags.theme.cssFile, page, pdf, env)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := mdprint.ResolvePoolSize(workers)
	log.Debug("Starting conversion", zap.Int("files", len(files)), zap.Int("workers", poolSize))

	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("Closing converters", zap.Error(err))
		}
	}()

	results := convertBatch(ctx, pool, files, params)
	failed := printResults(results, flags.common, env)

	if flags.watch {
		rebuild := func(ctx context.Context) error {
			files, err := discoverFiles(inputs, target)
			if err != nil {
				return err
			}
			// Reread the stylesheet, it may be what changed
			params, err := buildParams(cfg, flags.theme.cssFile, page, pdf, env)
			if err != nil {
				return err
			}
			printResults(convertBatch(ctx, pool, files, params), flags.common, env)
			return nil
		}
		if !flags.common.quiet {
			fmt.Fprintln(env.Stderr, "Watching for changes, press Ctrl+C to stop")
		}
		return watchAndConvert(ctx, watchRoots(inputs, flags.theme.cssFile), rebuild, log)
	}

	if failed > 0 {
		return &batchError{failed: failed, total: len(results), first: firstError(results)}
	}
	return nil
}

// loadConfig loads the config named by the flag, then by the environment,
// and falls back to the default config when neither is set.
func loadConfig(flagConfig, envConfig string) (*config.Config, error) {
	switch {
	case flagConfig != "":
		return config.LoadConfig(flagConfig)
	case envConfig != "":
		return config.LoadConfig(envConfig)
	default:
		return config.LoadDefault()
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Output flags
	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
	if flags.output.pdf {
		cfg.Output.Format = "pdf"
	}

	// Theme flags
	if flags.theme.variant != "" {
		cfg.Theme.Variant = flags.theme.variant
	}
	if flags.theme.name != "" {
		cfg.Theme.Name = flags.theme.name
	}

	// Page flags
	if flags.page.fontSize != 0 {
		cfg.Page.FontSize = flags.page.fontSize
	}
	if flags.page.zoomFactor != 0 {
		cfg.Page.ZoomFactor = flags.page.zoomFactor
	}
	if flags.page.monoFont != "" {
		cfg.Page.MonoFont = flags.page.monoFont
	}
	if flags.page.h1Weight != 0 {
		cfg.Page.H1Weight = flags.page.h1Weight
	}
	if flags.page.h2Weight != 0 {
		cfg.Page.H2Weight = flags.page.h2Weight
	}

	// Converter flags
	if flags.highlight != "" {
		cfg.Highlight.Style = flags.highlight
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
}

// converterOptions translates the config into converter options.
func converterOptions(cfg *config.Config, log *zap.Logger) ([]mdprint.Option, error) {
	opts := []mdprint.Option{mdprint.WithLogger(log)}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, mdprint.WithTimeout(timeout))
	}

	if style := cfg.Highlight.Style; style != "" {
		if !slices.Contains(mdprint.HighlightStyles(), style) {
			return nil, fmt.Errorf("%w: %q", mdprint.ErrUnknownHighlightStyle, style)
		}
		opts = append(opts, mdprint.WithHighlighting(style))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdprint.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}

// buildPageSettings returns the typography overrides, or nil to keep the
// vault's settings.
func buildPageSettings(cfg *config.Config) (*mdprint.PageSettings, error) {
	p := cfg.Page
	if p == (config.PageConfig{}) {
		return nil, nil
	}

	page := &mdprint.PageSettings{
		FontSize:   p.FontSize,
		ZoomFactor: p.ZoomFactor,
		MonoFont:   p.MonoFont,
		H1Weight:   p.H1Weight,
		H2Weight:   p.H2Weight,
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// buildParams bundles per-note inputs, reading the theme stylesheet file
// when one is given.
func buildParams(cfg *config.Config, cssFile string, page *mdprint.PageSettings, pdf bool, env *Environment) (*conversionParams, error) {
	params := &conversionParams{
		theme:     strings.ToLower(cfg.Theme.Variant),
		themeName: cfg.Theme.Name,
		page:      page,
		pdf:       pdf,
		stdout:    env.Stdout,
	}

	if cssFile != "" {
		data, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided stylesheet
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadThemeCSS, err)
		}
		params.themeCSS = string(data)
	}
	return params, nil
}
