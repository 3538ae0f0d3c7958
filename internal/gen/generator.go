package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"measurement-generator/internal/common"
	"measurement-generator/primitive"
	"measurement-generator/schema"
)

// DefaultFileName is the name of the generated file in each package.
const DefaultFileName = "measurement_gen.go"

const measurementImport = "measurement-generator/measurement"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileName is the name of the generated file inside the package directory.
	FileName string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// AssertInterface emits a compile-time measurement.Measurement assertion
	// per type.
	AssertInterface bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileName:         DefaultFileName,
		GenerateComments: true,
		AssertInterface:  true,
	}
}

// Generator generates Go code from resolved record types.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileName == "" {
		config.FileName = DefaultFileName
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "measurement_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates the serializers of records, which must all belong to the
// package pkgName located in dir.
func (g *Generator) Generate(pkgName, dir string, records []*schema.RecordType) (*GeneratedFile, error) {
	data := &templateData{
		PackageName:      pkgName,
		GenerateComments: g.config.GenerateComments,
		AssertInterface:  g.config.AssertInterface,
	}

	imports := map[string]struct{}{}
	if g.config.AssertInterface {
		imports[measurementImport] = struct{}{}
	}

	for _, rt := range records {
		td, err := buildType(rt, imports)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", rt.Name, err)
		}

		data.Types = append(data.Types, td)
	}

	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	slices.Sort(data.Imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		_ = writeDebugUnformatted(dir, g.config.FileName, buf.Bytes())

		return &GeneratedFile{
			Dir:      dir,
			Filename: g.config.FileName,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Dir:      dir,
		Filename: g.config.FileName,
		Content:  formatted,
	}, nil
}

// part is either a literal to append or a rendered statement.
type part struct {
	literal string
	stmt    *primitive.Statement
}

func buildType(rt *schema.RecordType, imports map[string]struct{}) (typeData, error) {
	recv := receiverName(rt.Name)

	td := typeData{
		TypeName:           rt.Name,
		Receiver:           recv,
		MeasurementName:    rt.MeasurementName,
		MeasurementLiteral: strconv.Quote(rt.MeasurementName),
	}

	src := func(f schema.FieldDescriptor) string { return recv + "." + f.SourceName }
	comma := part{literal: ","}

	var tags []part
	for _, f := range rt.Tags() {
		stmt, err := primitive.TagStatement(f.Kind, f.Stringer, "dst", f.WireName, src(f))
		if err != nil {
			return td, fmt.Errorf("tag %s: %w", f.SourceName, err)
		}

		tags = append(tags, part{stmt: &stmt})
	}

	var fields []part
	for _, f := range rt.Fields() {
		stmt, err := primitive.FieldStatement(f.Kind, "dst", f.WireName, src(f))
		if err != nil {
			return td, fmt.Errorf("field %s: %w", f.SourceName, err)
		}

		fields = append(fields, part{stmt: &stmt})
	}

	parts := []part{{literal: rt.MeasurementName}}
	if len(tags) > 0 {
		parts = append(parts, comma)
		parts = append(parts, common.Intersperse(tags, comma)...)
	}

	parts = append(parts, part{literal: " "})
	parts = append(parts, common.Intersperse(fields, comma)...)
	parts = append(parts, part{literal: " "})

	if f, ok := rt.Timestamp(); ok {
		stmt, err := primitive.TimestampStatement(f.Kind, "dst", src(f))
		if err != nil {
			return td, fmt.Errorf("timestamp %s: %w", f.SourceName, err)
		}

		parts = append(parts, part{stmt: &stmt})
	}

	td.Statements = compact(parts, imports)

	return td, nil
}

// compact merges adjacent literals into single appends and records imports.
func compact(parts []part, imports map[string]struct{}) []string {
	var (
		out     []string
		pending strings.Builder
	)

	flush := func() {
		if pending.Len() == 0 {
			return
		}

		out = append(out, fmt.Sprintf("dst = append(dst, %s...)", strconv.Quote(pending.String())))
		pending.Reset()
	}

	for _, p := range parts {
		if p.stmt == nil {
			pending.WriteString(p.literal)
			continue
		}

		flush()
		out = append(out, p.stmt.Code)

		for _, imp := range p.stmt.Imports {
			imports[imp] = struct{}{}
		}
	}

	flush()

	return out
}

func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || r == '_' {
		return "m"
	}

	return string(unicode.ToLower(r))
}
