package measurement_test

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"measurement-generator/measurement"
	"measurement-generator/schema"
)

type Reading struct {
	_       struct{}  `influx:"rename=my_measure"`
	Region  string    `influx:"tag,rename=region"`
	Count   int32     `influx:"field,rename=amount"`
	TS      time.Time `influx:"timestamp"`
	Scratch int
}

type Plain struct {
	V int `influx:"field,rename=v"`
}

var ts = time.Unix(1_700_000_000, 42)

func TestAppendLine_Reading(t *testing.T) {
	t.Parallel()

	line, err := measurement.Line(Reading{Region: "us-east", Count: 3, TS: ts, Scratch: 9})
	require.NoError(t, err)
	assert.Equal(t, "my_measure,region=us-east amount=3i 1700000000000000042", line)
}

func TestAppendLine_PlainKeepsTrailingSpace(t *testing.T) {
	t.Parallel()

	line, err := measurement.Line(Plain{V: 1})
	require.NoError(t, err)
	assert.Equal(t, "Plain v=1i ", line)
}

func TestAppendLine_Pointer(t *testing.T) {
	t.Parallel()

	line, err := measurement.Line(&Plain{V: 2})
	require.NoError(t, err)
	assert.Equal(t, "Plain v=2i ", line)

	_, err = measurement.Line((*Plain)(nil))
	require.ErrorIs(t, err, measurement.ErrNilValue)

	_, err = measurement.Line(nil)
	require.ErrorIs(t, err, measurement.ErrNilValue)
}

type status string

type level int

func (l level) String() string { return "L" + strconv.Itoa(int(l)) }

type Everything struct {
	_      struct{}      `influx:"rename=everything"`
	Host   string        `influx:"tag,rename=host"`
	Shard  uint16        `influx:"tag,rename=shard"`
	Level  level         `influx:"tag,rename=level"`
	Ratio  float32       `influx:"tag,field,rename=ratio"`
	State  status        `influx:"field,rename=state"`
	Up     bool          `influx:"field,rename=up"`
	Bytes  uint64        `influx:"field,rename=bytes"`
	Load   float64       `influx:"field,rename=load"`
	Wait   time.Duration `influx:"field,rename=wait"`
	Nanos  int64         `influx:"timestamp"`
	ignore string
}

func TestAppendLine_AllKinds(t *testing.T) {
	t.Parallel()

	v := Everything{
		Host:   "web 1",
		Shard:  7,
		Level:  2,
		Ratio:  0.5,
		State:  `say "ok"`,
		Up:     true,
		Bytes:  1024,
		Load:   1.25,
		Wait:   time.Millisecond,
		Nanos:  99,
		ignore: "x",
	}

	line, err := measurement.Line(v)
	require.NoError(t, err)
	assert.Equal(t,
		`everything,host=web\ 1,shard=7,level=L2,ratio=0.5 ratio=0.5,state="say \"ok\"",up=true,bytes=1024u,load=1.25,wait=1000000i 99`,
		line)
}

type (
	whoTag struct {
		Who fmt.Stringer `influx:"tag"`
		V   int          `influx:"field"`
	}
	levelPtrTag struct {
		Who *level `influx:"tag"`
		V   int    `influx:"field"`
	}
	wideStamp struct {
		V  int    `influx:"field"`
		TS uint64 `influx:"timestamp"`
	}
	narrowStamp struct {
		V  int    `influx:"field"`
		TS uint32 `influx:"timestamp"`
	}
)

func TestLine_RejectsTypesThatCannotAlwaysSerialize(t *testing.T) {
	t.Parallel()

	for _, v := range []any{whoTag{V: 1}, levelPtrTag{V: 1}, wideStamp{V: 1, TS: 1 << 63}} {
		assert.NotPanics(t, func() {
			_, err := measurement.Line(v)
			require.ErrorIs(t, err, schema.ErrUnsupportedShape, "%T", v)
		}, "%T", v)
	}

	line, err := measurement.Line(narrowStamp{V: 1, TS: math.MaxUint32})
	require.NoError(t, err)
	assert.Equal(t, "narrowStamp V=1i 4294967295", line)
}

type custom struct{}

func (custom) MeasurementName() string      { return "custom" }
func (custom) AppendLine(dst []byte) []byte { return append(dst, "custom v=1i "...) }

func TestAppendLine_PrefersGeneratedMethod(t *testing.T) {
	t.Parallel()

	var _ measurement.Measurement = custom{}

	line, err := measurement.Line(custom{})
	require.NoError(t, err)
	assert.Equal(t, "custom v=1i ", line)
}

func TestAppendBatch(t *testing.T) {
	t.Parallel()

	out, err := measurement.AppendBatch(nil, Plain{V: 1}, &Plain{V: 2}, custom{})
	require.NoError(t, err)
	assert.Equal(t, "Plain v=1i \nPlain v=2i \ncustom v=1i ", string(out))

	type broken struct {
		A int
	}

	prefix := []byte("keep")
	out, err = measurement.AppendBatch(prefix, Plain{V: 1}, broken{})
	require.ErrorIs(t, err, schema.ErrConstraintViolation)
	assert.Equal(t, "keep", string(out))
}

func TestFor_CachesCodecsAndErrors(t *testing.T) {
	t.Parallel()

	first, err := measurement.Of[Reading]()
	require.NoError(t, err)

	second, err := measurement.For(reflect.TypeFor[*Reading]())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "my_measure", first.Schema().MeasurementName)
	assert.Equal(t, reflect.TypeFor[Reading](), first.Type())

	type twoStamps struct {
		V int       `influx:"field"`
		A time.Time `influx:"timestamp"`
		B time.Time `influx:"timestamp"`
	}

	_, err1 := measurement.Of[twoStamps]()
	_, err2 := measurement.Of[twoStamps]()
	require.ErrorIs(t, err1, schema.ErrConstraintViolation)
	assert.Same(t, err1, err2)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	require.NoError(t, measurement.Register[Plain]())

	type notAStruct int

	assert.ErrorIs(t, measurement.Register[notAStruct](), schema.ErrUnsupportedShape)
	assert.Panics(t, func() { measurement.MustRegister[notAStruct]() })
}

func TestCodec_AppendWrongTypePanics(t *testing.T) {
	t.Parallel()

	codec, err := measurement.Of[Plain]()
	require.NoError(t, err)

	assert.Panics(t, func() { codec.Append(nil, Reading{}) })
	assert.Equal(t, "Plain v=5i ", string(codec.Append(nil, Plain{V: 5})))
}

func TestCodec_ConcurrentUse(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup

	lines := make([]string, 32)
	for i := range lines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			codec, err := measurement.Of[Reading]()
			if err != nil {
				return
			}

			lines[i] = string(codec.Append(nil, Reading{Region: "r" + strconv.Itoa(i), Count: int32(i), TS: ts}))
		}()
	}

	wg.Wait()

	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("my_measure,region=r%d amount=%di 1700000000000000042", i, i), line)
	}
}

// Separators are derived from section sizes: k tags give k-1 separators
// between tags, m fields give m-1, and there are always two section spaces.
func TestCompile_SeparatorCounts(t *testing.T) {
	t.Parallel()

	for k := range 4 {
		for m := 1; m <= 4; m++ {
			var fields []reflect.StructField
			for i := range k {
				fields = append(fields, reflect.StructField{
					Name: "T" + strconv.Itoa(i),
					Type: reflect.TypeFor[string](),
					Tag:  `influx:"tag"`,
				})
			}

			for i := range m {
				fields = append(fields, reflect.StructField{
					Name: "F" + strconv.Itoa(i),
					Type: reflect.TypeFor[int64](),
					Tag:  `influx:"field"`,
				})
			}

			typ := reflect.StructOf(fields)
			def := schema.FromReflect(typ)
			def.Name = "gen"

			rt, err := schema.Resolve(def)
			require.NoError(t, err)

			codec := measurement.Compile(typ, rt)

			v := reflect.New(typ).Elem()
			for i := range k {
				v.Field(i).SetString("a")
			}

			for i := range m {
				v.Field(k + i).SetInt(1)
			}

			line := string(codec.AppendValue(nil, v))

			assert.Equal(t, 2, strings.Count(line, " "), line)

			sections := strings.Split(line, " ")
			require.Len(t, sections, 3, line)
			assert.Empty(t, sections[2], line)

			head := strings.Split(sections[0], ",")
			assert.Len(t, head, 1+k, line)
			assert.Equal(t, "gen", head[0])

			assert.Equal(t, max(m-1, 0), strings.Count(sections[1], ","), line)
			assert.False(t, strings.HasSuffix(sections[0], ","), line)
			assert.False(t, strings.HasPrefix(sections[1], ","), line)
		}
	}
}
