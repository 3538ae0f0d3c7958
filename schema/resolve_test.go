package schema_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"measurement-generator/primitive"
	"measurement-generator/schema"
)

type Reading struct {
	_       struct{}  `influx:"rename=my_measure"`
	Region  string    `influx:"tag,rename=region"`
	Count   int32     `influx:"field,rename=amount"`
	TS      time.Time `influx:"timestamp"`
	Scratch int
}

type level int

func (l level) String() string { return fmt.Sprintf("L%d", int(l)) }

func resolve(t *testing.T, v any) (*schema.RecordType, error) {
	t.Helper()

	return schema.Resolve(schema.FromReflect(reflect.TypeOf(v)))
}

func names(fields []schema.FieldDescriptor) []string {
	var out []string
	for _, f := range fields {
		out = append(out, f.WireName)
	}

	return out
}

func TestResolve_Reading(t *testing.T) {
	t.Parallel()

	rt, err := resolve(t, Reading{})
	require.NoError(t, err)

	assert.Equal(t, "Reading", rt.Name)
	assert.Equal(t, "my_measure", rt.MeasurementName)
	assert.Equal(t, []string{"region"}, names(rt.Tags()))
	assert.Equal(t, []string{"amount"}, names(rt.Fields()))

	ts, ok := rt.Timestamp()
	require.True(t, ok)
	assert.Equal(t, "TS", ts.WireName)
	assert.Equal(t, primitive.KindTime, ts.Kind)

	require.Len(t, rt.Descriptors, 4, spew.Sdump(rt))
	scratch := rt.Descriptors[3]
	assert.Equal(t, "Scratch", scratch.SourceName)
	assert.Equal(t, schema.RoleIgnored, scratch.Role)

	count := rt.Descriptors[1]
	assert.Equal(t, "Count", count.SourceName)
	assert.Equal(t, 2, count.Index)
	assert.Equal(t, schema.RoleField, count.Role)
}

func TestResolve_DefaultNames(t *testing.T) {
	t.Parallel()

	type Plain struct {
		V int `influx:"field"`
	}

	rt, err := resolve(t, Plain{})
	require.NoError(t, err)
	assert.Equal(t, "Plain", rt.MeasurementName)
	assert.Equal(t, []string{"V"}, names(rt.Fields()))
	assert.Empty(t, rt.Tags())

	_, ok := rt.Timestamp()
	assert.False(t, ok)
}

func TestResolve_MonotonicMerge(t *testing.T) {
	t.Parallel()

	type merged struct {
		Host  string `influx:"tag" influx:"rename=x"`
		Value int    `influx:"field,rename=a" influx:"tag"`
		Load  int    `influx:"field,rename=a" influx:"rename=b"`
	}

	rt, err := resolve(t, merged{})
	require.NoError(t, err)

	host := rt.Descriptors[0]
	assert.Equal(t, schema.RoleTag, host.Role)
	assert.Equal(t, "x", host.WireName)

	value := rt.Descriptors[1]
	assert.True(t, value.IsTag)
	assert.True(t, value.IsField)
	assert.Equal(t, "a", value.WireName)

	assert.Equal(t, "b", rt.Descriptors[2].WireName)

	// Multi-role fields are emitted in every section they are marked for.
	assert.Equal(t, []string{"x", "a"}, names(rt.Tags()))
	assert.Equal(t, []string{"a", "b"}, names(rt.Fields()))
}

func TestResolve_TypeLevelRenameLastWins(t *testing.T) {
	t.Parallel()

	type renamed struct {
		_ struct{} `influx:"rename=first"`
		_ struct{} `influx:"rename=second"`
		V float64  `influx:"field"`
	}

	rt, err := resolve(t, renamed{})
	require.NoError(t, err)
	assert.Equal(t, "second", rt.MeasurementName)
	assert.Len(t, rt.Descriptors, 1)
}

func TestResolve_StringerTag(t *testing.T) {
	t.Parallel()

	type leveled struct {
		Level level         `influx:"tag"`
		Wait  time.Duration `influx:"tag,field"`
	}

	rt, err := resolve(t, leveled{})
	require.NoError(t, err)
	assert.True(t, rt.Descriptors[0].Stringer)
	assert.True(t, rt.Descriptors[1].Stringer)
}

func TestResolve_NilableStringerTag(t *testing.T) {
	t.Parallel()

	type ifaceTag struct {
		Who fmt.Stringer `influx:"tag"`
		V   int          `influx:"field"`
	}

	type ptrTag struct {
		Who *level `influx:"tag"`
		V   int    `influx:"field"`
	}

	for _, v := range []any{ifaceTag{}, ptrTag{}} {
		_, err := resolve(t, v)
		require.ErrorIs(t, err, schema.ErrUnsupportedShape, "%T", v)

		var serr *schema.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, []string{"Who"}, serr.Fields)
	}

	type ignoredPtr struct {
		Who *level
		V   int `influx:"field"`
	}

	_, err := resolve(t, ignoredPtr{})
	require.NoError(t, err)
}

func TestResolve_UnsignedTimestamp(t *testing.T) {
	t.Parallel()

	type small struct {
		V  int    `influx:"field"`
		At uint32 `influx:"timestamp"`
	}

	type wide struct {
		V  int    `influx:"field"`
		At uint64 `influx:"timestamp"`
	}

	type platform struct {
		V  int  `influx:"field"`
		At uint `influx:"timestamp"`
	}

	_, err := resolve(t, small{})
	require.NoError(t, err)

	for _, v := range []any{wide{}, platform{}} {
		_, err := resolve(t, v)
		require.ErrorIs(t, err, schema.ErrUnsupportedShape, "%T", v)
	}
}

func TestResolve_Generic(t *testing.T) {
	t.Parallel()

	def := schema.TypeDef{
		Name:    "Pair",
		Struct:  true,
		Generic: true,
		Fields:  []schema.FieldDef{{Name: "V", Exported: true, Tag: `influx:"field"`, Kind: primitive.KindInt}},
	}

	_, err := schema.Resolve(def)
	require.ErrorIs(t, err, schema.ErrUnsupportedShape)
	assert.Contains(t, err.Error(), "generic types")
	assert.NotContains(t, err.Error(), "named fields")
}

func TestResolve_ConstraintViolations(t *testing.T) {
	t.Parallel()

	t.Run("no field", func(t *testing.T) {
		type onlyTags struct {
			Host string    `influx:"tag"`
			At   time.Time `influx:"timestamp"`
		}

		_, err := resolve(t, onlyTags{})
		require.ErrorIs(t, err, schema.ErrConstraintViolation)

		var serr *schema.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, schema.InvariantFieldRequired, serr.Invariant)
		assert.Equal(t, "onlyTags", serr.Type)
	})

	t.Run("nothing annotated", func(t *testing.T) {
		type bare struct {
			A int
			B string
		}

		_, err := resolve(t, bare{})
		require.ErrorIs(t, err, schema.ErrConstraintViolation)
	})

	t.Run("two timestamps", func(t *testing.T) {
		type twice struct {
			V     int       `influx:"field"`
			At    time.Time `influx:"timestamp"`
			Nanos int64     `influx:"field" influx:"timestamp"`
		}

		_, err := resolve(t, twice{})
		require.ErrorIs(t, err, schema.ErrConstraintViolation)

		var serr *schema.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, schema.InvariantSingleTimestamp, serr.Invariant)
		assert.Equal(t, []string{"At", "Nanos"}, serr.Fields)
		assert.Contains(t, err.Error(), "at most one timestamp")
	})
}

func TestResolve_InvalidAnnotation(t *testing.T) {
	t.Parallel()

	type unknownKey struct {
		V int `influx:"field,measurement=x"`
	}

	type markerWithValue struct {
		V int `influx:"field=true"`
	}

	type typeLevelMarker struct {
		_ struct{} `influx:"tag"`
		V int      `influx:"field"`
	}

	type malformed struct {
		V int `influx:"field`
	}

	for _, v := range []any{unknownKey{}, markerWithValue{}, typeLevelMarker{}, malformed{}} {
		_, err := resolve(t, v)
		require.ErrorIs(t, err, schema.ErrInvalidAnnotation, "%T", v)
	}
}

type Inner struct{ V int }

func TestResolve_UnsupportedShape(t *testing.T) {
	t.Parallel()

	type embedded struct {
		Inner `influx:"field"`
		W     int `influx:"field"`
	}

	type unexported struct {
		v int `influx:"field"`
	}

	type mapField struct {
		M map[string]int `influx:"field"`
	}

	type timeField struct {
		At time.Time `influx:"field"`
	}

	type floatTimestamp struct {
		V  int     `influx:"field"`
		At float64 `influx:"timestamp"`
	}

	for _, v := range []any{0, []Reading{}, embedded{}, unexported{}, mapField{}, timeField{}, floatTimestamp{}} {
		_, err := resolve(t, v)
		require.ErrorIs(t, err, schema.ErrUnsupportedShape, "%T", v)
	}
}

func TestResolve_UnnamedStruct(t *testing.T) {
	t.Parallel()

	_, err := resolve(t, struct {
		V int `influx:"field"`
	}{})
	require.ErrorIs(t, err, schema.ErrUnsupportedShape)

	rt, err := resolve(t, struct {
		_ struct{} `influx:"rename=anon"`
		V int      `influx:"field"`
	}{})
	require.NoError(t, err)
	assert.Equal(t, "anon", rt.MeasurementName)
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := resolve(t, Reading{})
	require.NoError(t, err)

	second, err := resolve(t, Reading{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestResolver_TagKey(t *testing.T) {
	t.Parallel()

	type custom struct {
		V int `lp:"field,rename=value" influx:"tag"`
	}

	rt, err := schema.Resolver{TagKey: "lp"}.Resolve(schema.FromReflect(reflect.TypeFor[custom]()))
	require.NoError(t, err)
	assert.Equal(t, []string{"value"}, names(rt.Fields()))
	assert.Empty(t, rt.Tags())
}
