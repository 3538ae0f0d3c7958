package schema

import (
	"measurement-generator/internal/common"
	"measurement-generator/primitive"
)

//go:generate go tool stringer -type=Role -trimprefix=Role -output=role_string.go

// Role is the section a field is written to.
type Role int

const (
	RoleIgnored Role = iota
	RoleTag
	RoleField
	RoleTimestamp
)

// TypeDef is the resolver input: the shape of one Go type and the raw struct
// tags of its fields. It is built from reflection at runtime or from go/types
// by the generator.
type TypeDef struct {
	Name    string // Go type name, e.g. "Reading"
	PkgPath string
	Struct  bool
	Generic bool // declared with type parameters
	Fields  []FieldDef
}

// FieldDef describes one struct field as declared.
type FieldDef struct {
	Name     string
	Index    int
	Exported bool
	Embedded bool
	Tag      string // raw struct tag
	Kind     primitive.KindEnum
	Stringer bool // the field type implements fmt.Stringer
	Nilable  bool // pointer or interface, may hold nil
}

// RawAnnotation is one unresolved `influx:"..."` occurrence.
type RawAnnotation struct {
	IsTag       bool
	IsField     bool
	IsTimestamp bool
	Rename      string // empty when absent
}

// Empty reports whether the occurrence carries nothing.
func (a RawAnnotation) Empty() bool {
	return a == RawAnnotation{}
}

// Merge folds a later occurrence into a: markers are OR-ed and a non-empty
// rename in later replaces the current one.
func (a RawAnnotation) Merge(later RawAnnotation) RawAnnotation {
	merged := RawAnnotation{
		IsTag:       a.IsTag || later.IsTag,
		IsField:     a.IsField || later.IsField,
		IsTimestamp: a.IsTimestamp || later.IsTimestamp,
		Rename:      a.Rename,
	}

	if later.Rename != "" {
		merged.Rename = later.Rename
	}

	return merged
}

// Fold merges occurrences left to right.
func Fold(occurrences []RawAnnotation) RawAnnotation {
	var merged RawAnnotation
	for _, occ := range occurrences {
		merged = merged.Merge(occ)
	}

	return merged
}

// FieldDescriptor is the resolved form of one named struct field.
type FieldDescriptor struct {
	SourceName string
	WireName   string
	Index      int
	Kind       primitive.KindEnum
	Stringer   bool
	Role       Role

	// A field may be marked for more than one section; it is then written to
	// each of them. Role only reports the dominant one.
	IsTag       bool
	IsField     bool
	IsTimestamp bool
}

// RecordType is the immutable result of resolving a TypeDef.
type RecordType struct {
	Name            string
	PkgPath         string
	MeasurementName string
	// Descriptors holds every named field in declaration order, including
	// ignored ones.
	Descriptors []FieldDescriptor
}

// Tags returns the fields written to the tag section, in declaration order.
func (r *RecordType) Tags() []FieldDescriptor {
	return r.filter(func(f FieldDescriptor) bool { return f.IsTag })
}

// Fields returns the fields written to the field section, in declaration order.
func (r *RecordType) Fields() []FieldDescriptor {
	return r.filter(func(f FieldDescriptor) bool { return f.IsField })
}

// Timestamp returns the timestamp field, if the type has one.
func (r *RecordType) Timestamp() (FieldDescriptor, bool) {
	return common.First(r.timestamps())
}

func (r *RecordType) timestamps() []FieldDescriptor {
	return r.filter(func(f FieldDescriptor) bool { return f.IsTimestamp })
}

func (r *RecordType) filter(keep func(FieldDescriptor) bool) []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range r.Descriptors {
		if keep(f) {
			out = append(out, f)
		}
	}

	return out
}
