package main

import (
	"fmt"
	"path/filepath"

	"measurement-generator/internal/gen"
)

func runGen(e env, args []string) error {
	var (
		flags      commonFlags
		output     string
		outDir     string
		noComments bool
		noAssert   bool
		dryRun     bool
	)

	fs := newFlagSet("gen", e)
	flags.register(fs)
	fs.StringVarP(&output, "output", "o", "", "generated file name inside each package (default: measurement_gen.go)")
	fs.StringVar(&outDir, "out-dir", "", "write every generated file into this directory instead of its package")
	fs.BoolVar(&noComments, "no-comments", false, "omit doc comments on generated methods")
	fs.BoolVar(&noAssert, "no-assert", false, "omit the measurement.Measurement interface assertions")
	fs.BoolVarP(&dryRun, "dry-run", "n", false, "print generated code instead of writing it")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := flags.logger(e)
	if err != nil {
		return err
	}

	cfg, err := flags.loadConfig(fs.Args())
	if err != nil {
		return err
	}

	if output != "" {
		cfg.Generate.Output = output
	}

	resolved, diags, err := resolveAll(cfg, logger)
	if err != nil {
		return err
	}

	if diags.HasErrors() {
		report(e.stderr, diags, true)
		return errFailed
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		FileName:         cfg.Generate.Output,
		GenerateComments: cfg.Generate.WantComments() && !noComments,
		AssertInterface:  !noAssert,
	})

	var files []*gen.GeneratedFile

	for _, rp := range resolved {
		if len(rp.records) == 0 {
			logger.Info().Str("package", rp.pkg.Path).Msg("no measurement types, skipping")
			continue
		}

		file, err := generator.Generate(rp.pkg.Name, rp.pkg.Dir, rp.records)
		if err != nil {
			return fmt.Errorf("package %s: %w", rp.pkg.Path, err)
		}

		files = append(files, file)
	}

	if dryRun {
		for _, f := range files {
			fmt.Fprintf(e.stdout, "// === %s ===\n%s\n", filepath.Join(f.Dir, f.Filename), f.Content)
		}

		return nil
	}

	if err := gen.WriteFiles(files, outDir); err != nil {
		return err
	}

	for _, f := range files {
		dir := f.Dir
		if outDir != "" {
			dir = outDir
		}

		logger.Info().Str("file", filepath.Join(dir, f.Filename)).Msg("generated")
	}

	return nil
}
