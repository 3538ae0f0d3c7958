package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"measurement-generator/internal/diagnostic"
)

func runCheck(e env, args []string) error {
	var (
		flags commonFlags
		dump  bool
		quiet bool
	)

	fs := newFlagSet("check", e)
	flags.register(fs)
	fs.BoolVar(&dump, "dump", false, "dump resolved record types")
	fs.BoolVarP(&quiet, "quiet", "q", false, "only report errors and warnings")

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

	resolved, diags, err := resolveAll(cfg, logger)
	if err != nil {
		return err
	}

	if dump {
		cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		for _, rp := range resolved {
			for _, rt := range rp.records {
				cs.Fdump(e.stdout, rt)
			}
		}
	}

	report(e.stdout, diags, quiet)

	if diags.HasErrors() {
		return errFailed
	}

	return nil
}

func report(w io.Writer, diags *diagnostic.Diagnostics, quiet bool) {
	for _, d := range diags.Errors {
		fmt.Fprintf(w, "error: %s\n", d)
	}

	for _, d := range diags.Warnings {
		fmt.Fprintf(w, "warning: %s\n", d)
	}

	if quiet {
		return
	}

	for _, d := range diags.Infos {
		fmt.Fprintf(w, "info: %s\n", d)
	}

	fmt.Fprintf(w, "%d error(s), %d warning(s), %d type(s) ok\n",
		len(diags.Errors), len(diags.Warnings), countResolved(diags))
}

func countResolved(diags *diagnostic.Diagnostics) int {
	n := 0
	for _, d := range diags.Infos {
		if d.Code == diagnostic.CodeResolved {
			n++
		}
	}

	return n
}
