package primitive

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// Statement is a single generated Go statement plus the imports it needs.
type Statement struct {
	Code    string
	Imports []string
}

// TagStatement renders the statement appending a tag pair. When stringer is
// set the value's String method is used regardless of its kind.
func TagStatement(kind KindEnum, stringer bool, dst, key, src string) (Statement, error) {
	tmpl := tagTemplates[kind]
	if stringer {
		tmpl = stringerTemplate
	}

	if tmpl == nil {
		return Statement{}, fmt.Errorf("kind %s cannot be written as a tag", kind)
	}

	return render(tmpl, dst, key, src)
}

// FieldStatement renders the statement appending a typed field pair.
func FieldStatement(kind KindEnum, dst, key, src string) (Statement, error) {
	tmpl := fieldTemplates[kind]
	if tmpl == nil {
		return Statement{}, fmt.Errorf("kind %s cannot be written as a field", kind)
	}

	return render(tmpl, dst, key, src)
}

// TimestampStatement renders the statement appending the line timestamp.
func TimestampStatement(kind KindEnum, dst, src string) (Statement, error) {
	tmpl := timestampTemplates[kind]
	if tmpl == nil {
		return Statement{}, fmt.Errorf("kind %s cannot be written as a timestamp", kind)
	}

	return render(tmpl, dst, "", src)
}

func render(tmpl *template.Template, dst, key, src string) (Statement, error) {
	var buf bytes.Buffer

	err := tmpl.Execute(&buf, map[string]any{
		"dst": dst,
		"key": strconv.Quote(key),
		"src": src,
	})
	if err != nil {
		return Statement{}, err
	}

	code := buf.String()
	stmt := Statement{Code: code, Imports: []string{lineprotoImport}}
	if strings.Contains(code, "strconv.") {
		stmt.Imports = append(stmt.Imports, "strconv")
	}

	return stmt, nil
}

const lineprotoImport = "measurement-generator/lineproto"
