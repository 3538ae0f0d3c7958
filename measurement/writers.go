package measurement

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"measurement-generator/lineproto"
	"measurement-generator/primitive"
	"measurement-generator/schema"
)

// The writers below pick the value accessor for a field once, from its
// resolved kind. Kinds were validated by the resolver, so the panics only
// guard against descriptors that did not come from schema.Resolve.

func tagWriter(f schema.FieldDescriptor) step {
	key, idx := f.WireName, f.Index

	if f.Stringer {
		return func(dst []byte, v reflect.Value) []byte {
			s := v.Field(idx).Interface().(fmt.Stringer)
			return lineproto.AppendTag(dst, key, s.String())
		}
	}

	switch k := f.Kind; {
	case k == primitive.KindString:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendTag(dst, key, v.Field(idx).String())
		}
	case k.IsSigned():
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendTag(dst, key, strconv.FormatInt(v.Field(idx).Int(), 10))
		}
	case k.IsUnsigned():
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendTag(dst, key, strconv.FormatUint(v.Field(idx).Uint(), 10))
		}
	case k.IsFloat():
		bits := 64
		if k == primitive.KindFloat32 {
			bits = 32
		}

		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendTag(dst, key, strconv.FormatFloat(v.Field(idx).Float(), 'f', -1, bits))
		}
	case k == primitive.KindBool:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendTag(dst, key, strconv.FormatBool(v.Field(idx).Bool()))
		}
	}

	panic(fmt.Sprintf("measurement: %s cannot be a tag", f.Kind))
}

func fieldWriter(f schema.FieldDescriptor) step {
	key, idx := f.WireName, f.Index

	switch k := f.Kind; {
	case k.IsSigned() || k == primitive.KindDuration:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendIntField(dst, key, v.Field(idx).Int())
		}
	case k.IsUnsigned():
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendUintField(dst, key, v.Field(idx).Uint())
		}
	case k == primitive.KindFloat32:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendFloat32Field(dst, key, float32(v.Field(idx).Float()))
		}
	case k == primitive.KindFloat64:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendFloatField(dst, key, v.Field(idx).Float())
		}
	case k == primitive.KindBool:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendBoolField(dst, key, v.Field(idx).Bool())
		}
	case k == primitive.KindString:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendStringField(dst, key, v.Field(idx).String())
		}
	}

	panic(fmt.Sprintf("measurement: %s cannot be a field", f.Kind))
}

func timestampWriter(f schema.FieldDescriptor) step {
	idx := f.Index

	switch k := f.Kind; {
	case k == primitive.KindTime:
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendTimestamp(dst, v.Field(idx).Interface().(time.Time))
		}
	case k.IsSigned():
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendNanos(dst, v.Field(idx).Int())
		}
	case k.IsUnsigned():
		return func(dst []byte, v reflect.Value) []byte {
			return lineproto.AppendNanos(dst, int64(v.Field(idx).Uint()))
		}
	}

	panic(fmt.Sprintf("measurement: %s cannot be a timestamp", f.Kind))
}
