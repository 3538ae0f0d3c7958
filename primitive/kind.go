package primitive

import (
	"go/types"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies a Go type by how its values are written on the wire.
// Named types are classified by their underlying kind, so `type Status string`
// is KindString; time.Time and time.Duration are recognized before that.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// CanField reports whether values of this kind can be written as a field value.
func (k KindEnum) CanField() bool {
	return k.IsNumber() || k == KindBool || k == KindString || k == KindDuration
}

// CanTag reports whether values of this kind can be stringified into a tag
// value without help from a String method.
func (k KindEnum) CanTag() bool {
	return k.IsNumber() || k == KindBool || k == KindString
}

// CanTimestamp reports whether values of this kind can be the line timestamp.
// Integers are taken as nanoseconds since the Unix epoch. uint and uint64 are
// rejected since they do not fit an int64 epoch.
func (k KindEnum) CanTimestamp() bool {
	switch k {
	case KindUint, KindUint64:
		return false
	}

	return k == KindTime || k.IsInteger()
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	switch rtype {
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	}
}

// FromGoType is FromReflectType for types loaded with go/types.
func FromGoType(t types.Type) KindEnum {
	if t == nil {
		return 0
	}

	if named, ok := t.(*types.Named); ok {
		obj := named.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == "time" {
			switch obj.Name() {
			case "Time":
				return KindTime
			case "Duration":
				return KindDuration
			}
		}
	}

	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return 0
	}

	switch basic.Kind() {
	default:
		return 0
	case types.Int:
		return KindInt
	case types.Int8:
		return KindInt8
	case types.Int16:
		return KindInt16
	case types.Int32:
		return KindInt32
	case types.Int64:
		return KindInt64
	case types.Uint:
		return KindUint
	case types.Uint8:
		return KindUint8
	case types.Uint16:
		return KindUint16
	case types.Uint32:
		return KindUint32
	case types.Uint64:
		return KindUint64
	case types.Float32:
		return KindFloat32
	case types.Float64:
		return KindFloat64
	case types.Bool:
		return KindBool
	case types.String:
		return KindString
	}
}
