package main

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"measurement-generator/internal/analyze"
	"measurement-generator/internal/config"
	"measurement-generator/internal/diagnostic"
	"measurement-generator/internal/logging"
	"measurement-generator/internal/match"
	"measurement-generator/schema"
)

// commonFlags are shared by check and gen.
type commonFlags struct {
	configPath string
	tagKey     string
	types      []string
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultFileName+" if present)")
	fs.StringVar(&c.tagKey, "tag-key", "", "struct tag key holding annotations (default: influx)")
	fs.StringSliceVar(&c.types, "types", nil, "only these type names")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level")
}

func (c *commonFlags) logger(e env) (zerolog.Logger, error) {
	return logging.InitTo(e.stderr, appName, c.logLevel)
}

// loadConfig reads the config file and applies flag overrides.
func (c *commonFlags) loadConfig(patterns []string) (*config.File, error) {
	cfg, err := config.LoadOptional(c.configPath)
	if err != nil {
		return nil, err
	}

	if len(patterns) > 0 {
		cfg.Generate.Packages = patterns
	}

	if c.tagKey != "" {
		cfg.Generate.TagKey = c.tagKey
	}

	if len(c.types) > 0 {
		cfg.Generate.Types = c.types
	}

	if diags := config.ValidateGenerate(cfg); diags.HasErrors() {
		return nil, fmt.Errorf("invalid configuration: %w", diags.Error())
	}

	return cfg, nil
}

// resolvedPackage is a loaded package with its successfully resolved types.
type resolvedPackage struct {
	pkg     *analyze.Package
	records []*schema.RecordType
}

// resolveAll loads the configured packages and resolves every selected
// candidate. Resolution failures become diagnostics; only load failures are
// returned as errors.
func resolveAll(cfg *config.File, logger zerolog.Logger) ([]resolvedPackage, *diagnostic.Diagnostics, error) {
	analyzer := analyze.NewAnalyzer()
	analyzer.TagKey = cfg.Generate.TagKey

	pkgs, err := analyzer.LoadPackages(cfg.Generate.Packages...)
	if err != nil {
		return nil, nil, err
	}

	resolver := schema.Resolver{TagKey: cfg.Generate.TagKey}
	diags := &diagnostic.Diagnostics{}

	var (
		out   []resolvedPackage
		found []string
	)

	for _, pkg := range pkgs {
		rp := resolvedPackage{pkg: pkg}

		for _, cand := range pkg.Types {
			found = append(found, cand.ID.Name)

			if !cfg.Generate.Selected(cand.ID.Name) {
				continue
			}

			rt, err := resolver.Resolve(cand.Def)
			if err != nil {
				logger.Debug().Str("type", cand.ID.String()).Err(err).Msg("resolve failed")
				diags.AddResolveError(cand.ID.Short(), err)

				continue
			}

			diags.CheckRecord(cand.ID.Short(), rt)
			rp.records = append(rp.records, rt)
		}

		logger.Debug().Str("package", pkg.Path).Int("types", len(rp.records)).Msg("package resolved")
		out = append(out, rp)
	}

	for _, name := range cfg.Generate.Types {
		if !slices.Contains(found, name) {
			diags.AddWarning(diagnostic.CodeUnknownType,
				fmt.Sprintf("no annotated struct named %q%s", name, match.Hint(name, found)), name, "")
		}
	}

	return out, diags, nil
}
