package primitive

import "text/template"

var (
	tagTemplates       map[KindEnum]*template.Template
	fieldTemplates     map[KindEnum]*template.Template
	timestampTemplates map[KindEnum]*template.Template
	stringerTemplate   *template.Template
)

func init() {
	tagTemplates = map[KindEnum]*template.Template{}
	fieldTemplates = map[KindEnum]*template.Template{}
	timestampTemplates = map[KindEnum]*template.Template{}

	stringerTemplate = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, {{.src}}.String())")

	for kind := KindEnum(1); int(kind) < KindTotal; kind++ {
		switch {
		case kind.IsSigned():
			tagTemplates[kind] = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, strconv.FormatInt(int64({{.src}}), 10))")
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendIntField({{.dst}}, {{.key}}, int64({{.src}}))")
			timestampTemplates[kind] = parse("{{.dst}} = lineproto.AppendNanos({{.dst}}, int64({{.src}}))")

		case kind.IsUnsigned():
			tagTemplates[kind] = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, strconv.FormatUint(uint64({{.src}}), 10))")
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendUintField({{.dst}}, {{.key}}, uint64({{.src}}))")

			if kind.CanTimestamp() {
				timestampTemplates[kind] = parse("{{.dst}} = lineproto.AppendNanos({{.dst}}, int64({{.src}}))")
			}

		case kind == KindFloat32:
			tagTemplates[kind] = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, strconv.FormatFloat(float64({{.src}}), 'f', -1, 32))")
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendFloat32Field({{.dst}}, {{.key}}, float32({{.src}}))")

		case kind == KindFloat64:
			tagTemplates[kind] = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, strconv.FormatFloat(float64({{.src}}), 'f', -1, 64))")
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendFloatField({{.dst}}, {{.key}}, float64({{.src}}))")

		case kind == KindBool:
			tagTemplates[kind] = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, strconv.FormatBool(bool({{.src}})))")
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendBoolField({{.dst}}, {{.key}}, bool({{.src}}))")

		case kind == KindString:
			tagTemplates[kind] = parse("{{.dst}} = lineproto.AppendTag({{.dst}}, {{.key}}, string({{.src}}))")
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendStringField({{.dst}}, {{.key}}, string({{.src}}))")

		case kind == KindDuration:
			fieldTemplates[kind] = parse("{{.dst}} = lineproto.AppendIntField({{.dst}}, {{.key}}, int64({{.src}}))")

		case kind == KindTime:
			timestampTemplates[kind] = parse("{{.dst}} = lineproto.AppendTimestamp({{.dst}}, {{.src}})")
		}
	}
}

func parse(line string) *template.Template {
	return template.Must(template.New("line").Parse(line))
}
