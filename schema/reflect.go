package schema

import (
	"fmt"
	"reflect"

	"measurement-generator/primitive"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// FromReflect builds the TypeDef of t for runtime resolution.
func FromReflect(t reflect.Type) TypeDef {
	def := TypeDef{
		Name:    t.Name(),
		PkgPath: t.PkgPath(),
		Struct:  t.Kind() == reflect.Struct,
	}

	if !def.Struct {
		if def.Name == "" {
			def.Name = t.String()
		}

		return def
	}

	for i := range t.NumField() {
		sf := t.Field(i)
		def.Fields = append(def.Fields, FieldDef{
			Name:     sf.Name,
			Index:    i,
			Exported: sf.IsExported(),
			Embedded: sf.Anonymous,
			Tag:      string(sf.Tag),
			Kind:     primitive.FromReflectType(sf.Type),
			Stringer: sf.Type.Implements(stringerType),
			Nilable:  sf.Type.Kind() == reflect.Pointer || sf.Type.Kind() == reflect.Interface,
		})
	}

	return def
}
