package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"measurement-generator/internal/diagnostic"
	"measurement-generator/schema"
)

// DefaultFileName is looked up in the working directory when no file is given.
const DefaultFileName = "measurement-generator.yaml"

// Defaults applied by Parse.
const (
	DefaultOutput  = "measurement_gen.go"
	DefaultTimeout = 10 * time.Second
	currentVersion = "1"
)

// File is the root of a configuration file.
type File struct {
	Version  string   `yaml:"version,omitempty"`
	Generate Generate `yaml:"generate"`
	Write    Write    `yaml:"write"`
}

// Generate configures the ahead-of-time generator.
type Generate struct {
	// Packages are Go package patterns to scan.
	Packages StringOrArray `yaml:"packages"`
	// Types restricts generation to the named types; empty means all.
	Types StringOrArray `yaml:"types,omitempty"`
	// Output is the generated file name inside each package.
	Output string `yaml:"output,omitempty"`
	// TagKey is the struct tag key holding annotations.
	TagKey string `yaml:"tag_key,omitempty"`
	// Comments toggles doc comments on generated methods.
	Comments *bool `yaml:"comments,omitempty"`
}

// Write configures the line protocol writer.
type Write struct {
	URL      string        `yaml:"url"`
	Database string        `yaml:"database"`
	Gzip     bool          `yaml:"gzip,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// WantComments reports whether generated code carries doc comments.
func (g Generate) WantComments() bool {
	return g.Comments == nil || *g.Comments
}

// Selected reports whether the type name passes the Types filter.
func (g Generate) Selected(name string) bool {
	if len(g.Types) == 0 {
		return true
	}

	for _, t := range g.Types {
		if t == name {
			return true
		}
	}

	return false
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = currentVersion
	}

	if f.Generate.Output == "" {
		f.Generate.Output = DefaultOutput
	}

	if f.Generate.TagKey == "" {
		f.Generate.TagKey = schema.DefaultTagKey
	}

	if f.Write.Timeout == 0 {
		f.Write.Timeout = DefaultTimeout
	}
}

// ValidateGenerate checks the generate section.
func ValidateGenerate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("config_is_nil", "configuration is nil", "", "")
		return res
	}

	if f.Version != currentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", f.Version), "", "version")
	}

	if len(f.Generate.Packages) == 0 {
		res.AddError("missing_packages", "no packages to scan", "", "generate.packages")
	}

	if f.Generate.Output != "" && !isGoFile(f.Generate.Output) {
		res.AddError("bad_output", fmt.Sprintf("output %q must be a .go file name", f.Generate.Output), "", "generate.output")
	}

	return res
}

// ValidateWrite checks the write section.
func ValidateWrite(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("config_is_nil", "configuration is nil", "", "")
		return res
	}

	if f.Write.URL == "" {
		res.AddError("missing_url", "no server url", "", "write.url")
	} else if u, err := url.Parse(f.Write.URL); err != nil || u.Scheme == "" || u.Host == "" {
		res.AddError("bad_url", fmt.Sprintf("invalid server url %q", f.Write.URL), "", "write.url")
	}

	if f.Write.Database == "" {
		res.AddError("missing_database", "no database", "", "write.database")
	}

	if f.Write.Timeout < 0 {
		res.AddError("bad_timeout", "timeout must not be negative", "", "write.timeout")
	}

	return res
}

func isGoFile(name string) bool {
	return strings.HasSuffix(name, ".go") && name != ".go" && !strings.ContainsAny(name, `/\`)
}
