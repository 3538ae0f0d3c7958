package schema

import (
	"fmt"

	"measurement-generator/internal/common"
)

// Resolver turns TypeDefs into RecordTypes. The zero value reads the
// DefaultTagKey.
type Resolver struct {
	TagKey string
}

// Resolve resolves def with the default tag key.
func Resolve(def TypeDef) (*RecordType, error) {
	return Resolver{}.Resolve(def)
}

// Resolve parses, merges and validates the annotations of def.
func (r Resolver) Resolve(def TypeDef) (*RecordType, error) {
	key := r.TagKey
	if key == "" {
		key = DefaultTagKey
	}

	if !def.Struct {
		return nil, &Error{Kind: ErrUnsupportedShape, Type: def.Name, Msg: "only struct types with named fields can be measurements"}
	}

	if def.Generic {
		return nil, &Error{Kind: ErrUnsupportedShape, Type: def.Name, Msg: "generic types have no single layout to write"}
	}

	rt := &RecordType{
		Name:            def.Name,
		PkgPath:         def.PkgPath,
		MeasurementName: def.Name,
	}

	var typeLevel []RawAnnotation

	for _, f := range def.Fields {
		occurrences, err := collect(f.Tag, key)
		if err != nil {
			return nil, &Error{Kind: ErrInvalidAnnotation, Type: def.Name, Fields: []string{f.Name}, Msg: err.Error()}
		}

		if f.Name == "_" {
			typeLevel = append(typeLevel, occurrences...)
			continue
		}

		desc, err := describe(def.Name, f, Fold(occurrences))
		if err != nil {
			return nil, err
		}

		rt.Descriptors = append(rt.Descriptors, desc)
	}

	measurement := Fold(typeLevel)
	if measurement.IsTag || measurement.IsField || measurement.IsTimestamp {
		return nil, &Error{Kind: ErrInvalidAnnotation, Type: def.Name, Msg: "only rename is allowed at type level"}
	}

	if measurement.Rename != "" {
		rt.MeasurementName = measurement.Rename
	}

	if rt.MeasurementName == "" {
		return nil, &Error{Kind: ErrUnsupportedShape, Type: "struct{...}", Msg: "unnamed types need a type-level rename"}
	}

	if err := validate(rt); err != nil {
		return nil, err
	}

	return rt, nil
}

func collect(tag, key string) ([]RawAnnotation, error) {
	values, err := Lookup(tag, key)
	if err != nil {
		return nil, err
	}

	occurrences := make([]RawAnnotation, 0, len(values))
	for _, v := range values {
		ann, err := ParseAnnotation(v)
		if err != nil {
			return nil, err
		}

		occurrences = append(occurrences, ann)
	}

	return occurrences, nil
}

func describe(typeName string, f FieldDef, ann RawAnnotation) (FieldDescriptor, error) {
	desc := FieldDescriptor{
		SourceName:  f.Name,
		WireName:    f.Name,
		Index:       f.Index,
		Kind:        f.Kind,
		Stringer:    f.Stringer,
		IsTag:       ann.IsTag,
		IsField:     ann.IsField,
		IsTimestamp: ann.IsTimestamp,
	}

	if ann.Rename != "" {
		desc.WireName = ann.Rename
	}

	switch {
	case ann.IsTimestamp:
		desc.Role = RoleTimestamp
	case ann.IsTag:
		desc.Role = RoleTag
	case ann.IsField:
		desc.Role = RoleField
	default:
		desc.Role = RoleIgnored
		return desc, nil
	}

	shapeErr := func(msg string) error {
		return &Error{Kind: ErrUnsupportedShape, Type: typeName, Fields: []string{f.Name}, Msg: msg}
	}

	switch {
	case f.Embedded:
		return desc, shapeErr("embedded fields have no name to write")
	case !f.Exported:
		return desc, shapeErr("unexported fields cannot be read")
	case ann.IsTag && f.Stringer && f.Nilable:
		return desc, shapeErr("pointer and interface tags may be nil and cannot be written")
	case ann.IsTag && !f.Stringer && !f.Kind.CanTag():
		return desc, shapeErr(fmt.Sprintf("type kind %s cannot be a tag value", f.Kind))
	case ann.IsField && !f.Kind.CanField():
		return desc, shapeErr(fmt.Sprintf("type kind %s cannot be a field value", f.Kind))
	case ann.IsTimestamp && !f.Kind.CanTimestamp():
		return desc, shapeErr(fmt.Sprintf("type kind %s cannot be a timestamp", f.Kind))
	}

	return desc, nil
}

func validate(rt *RecordType) error {
	if common.IsEmpty(rt.Fields()) {
		return &Error{
			Kind:      ErrConstraintViolation,
			Type:      rt.Name,
			Invariant: InvariantFieldRequired,
			Msg:       "no field is annotated with field",
		}
	}

	if timestamps := rt.timestamps(); common.IsMultiple(timestamps) {
		names := make([]string, 0, len(timestamps))
		for _, f := range timestamps {
			names = append(names, f.SourceName)
		}

		return &Error{
			Kind:      ErrConstraintViolation,
			Type:      rt.Name,
			Fields:    names,
			Invariant: InvariantSingleTimestamp,
			Msg:       fmt.Sprintf("%d fields are annotated with timestamp", len(timestamps)),
		}
	}

	return nil
}
