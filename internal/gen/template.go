package gen

import "text/template"

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName      string
	Imports          []string
	Types            []typeData
	GenerateComments bool
	AssertInterface  bool
}

// typeData holds the generated methods of one type.
type typeData struct {
	TypeName           string
	Receiver           string
	MeasurementName    string
	MeasurementLiteral string
	Statements         []string
}

var fileTemplate = template.Must(template.New("measurement").Parse(`// Code generated by measurement-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{if .AssertInterface}}
var (
{{range .Types}}	_ measurement.Measurement = {{.TypeName}}{}
{{end}})
{{end}}
{{range .Types}}
{{if $.GenerateComments}}// MeasurementName returns the measurement {{.TypeName}} is written to.
{{end}}func ({{.TypeName}}) MeasurementName() string {
	return {{.MeasurementLiteral}}
}

{{if $.GenerateComments}}// AppendLine appends {{.TypeName}} as one line of line protocol.
{{end}}func ({{.Receiver}} {{.TypeName}}) AppendLine(dst []byte) []byte {
{{range .Statements}}	{{.}}
{{end}}
	return dst
}
{{end}}
`))
