package broken

// Unannotated is not a candidate.
type Unannotated struct {
	A int
}

// BadTag keeps its broken tag so the resolver can report it.
type BadTag struct {
	A int `influx:"field`
}

// Pair is generic and has no single layout.
type Pair[T any] struct {
	V T `influx:"field"`
}

type name string

func (n *name) String() string { return string(*n) }

// NamedTag has a tag that can be nil.
type NamedTag struct {
	Who *name `influx:"tag"`
	V   int   `influx:"field"`
}
