package lineproto_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"measurement-generator/lineproto"
)

func TestEscapeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"region", "region"},
		{"us east", `us\ east`},
		{"a,b", `a\,b`},
		{"k=v", `k\=v`},
		{`back\slash`, `back\slash`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lineproto.EscapeKey(tt.in), "input %q", tt.in)
	}
}

func TestEscapeMeasurement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cpu", lineproto.EscapeMeasurement("cpu"))
	assert.Equal(t, `cpu\ load\,avg`, lineproto.EscapeMeasurement("cpu load,avg"))
	assert.Equal(t, "a=b", lineproto.EscapeMeasurement("a=b"))
}

func TestAppendTag(t *testing.T) {
	t.Parallel()

	got := lineproto.AppendTag([]byte("m,"), "host name", "web,01")
	assert.Equal(t, `m,host\ name=web\,01`, string(got))
}

func TestAppendFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"int", lineproto.AppendIntField(nil, "n", -42), "n=-42i"},
		{"uint", lineproto.AppendUintField(nil, "n", math.MaxUint64), "n=18446744073709551615u"},
		{"float", lineproto.AppendFloatField(nil, "f", 1.5), "f=1.5"},
		{"float integral", lineproto.AppendFloatField(nil, "f", 3), "f=3"},
		{"float32", lineproto.AppendFloat32Field(nil, "f", 0.1), "f=0.1"},
		{"bool", lineproto.AppendBoolField(nil, "ok", true), "ok=true"},
		{"string", lineproto.AppendStringField(nil, "msg", `say "hi" \o/`), `msg="say \"hi\" \\o/"`},
		{"escaped key", lineproto.AppendIntField(nil, "a b", 1), `a\ b=1i`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(tt.got))
		})
	}
}

func TestAppendFloatField_NonFinite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "f=NaN", string(lineproto.AppendFloatField(nil, "f", math.NaN())))
	assert.Equal(t, "f=+Inf", string(lineproto.AppendFloatField(nil, "f", math.Inf(1))))
	assert.Equal(t, "f=-Inf", string(lineproto.AppendFloatField(nil, "f", math.Inf(-1))))

	assert.True(t, lineproto.IsFinite(1.5))
	assert.False(t, lineproto.IsFinite(math.NaN()))
	assert.False(t, lineproto.IsFinite(math.Inf(-1)))
}

func TestAppendTimestamp(t *testing.T) {
	t.Parallel()

	ts := time.Unix(1_600_000_000, 123)
	assert.Equal(t, "1600000000000000123", string(lineproto.AppendTimestamp(nil, ts)))
	assert.Equal(t, "42", string(lineproto.AppendNanos(nil, 42)))
	assert.Equal(t, "1600000000000000123", string(lineproto.Timestamp{Time: ts}.Append(nil)))
}

func TestField_Append(t *testing.T) {
	t.Parallel()

	got, err := lineproto.Field{Name: "d", Value: 2 * time.Second}.Append(nil)
	require.NoError(t, err)
	assert.Equal(t, "d=2000000000i", string(got))

	got, err = lineproto.Field{Name: "u", Value: uint8(7)}.Append(nil)
	require.NoError(t, err)
	assert.Equal(t, "u=7u", string(got))

	_, err = lineproto.Field{Name: "m", Value: map[string]int{}}.Append(nil)
	require.ErrorIs(t, err, lineproto.ErrUnsupportedValue)
}

func TestTag_Append(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "host=a", string(lineproto.Tag{Name: "host", Value: "a"}.Append(nil)))
}
