// Package schema resolves annotated struct definitions into measurement
// descriptors.
//
// Annotations are struct tags under the "influx" key:
//
//	type Reading struct {
//		_       struct{}  `influx:"rename=my_measure"`
//		Region  string    `influx:"tag"`
//		Count   int32     `influx:"field,rename=amount"`
//		When    time.Time `influx:"timestamp"`
//		Scratch int
//	}
//
// Recognized items are the markers tag, field and timestamp, and
// rename=<name>. A rename value may be single-quoted to carry commas or
// spaces: `influx:"rename='cpu load'"`. Blank fields carry type-level
// annotations, where only rename is accepted; it sets the measurement name,
// which otherwise defaults to the Go type name.
//
// The key may appear several times in one struct tag. Every occurrence is
// folded left to right: markers accumulate and never clear, a later rename
// replaces an earlier one, and an occurrence without rename keeps the
// previous one.
//
// Resolution fails with an *Error matching one of ErrInvalidAnnotation,
// ErrConstraintViolation or ErrUnsupportedShape. It is a pure function of
// the TypeDef, so resolving the same definition twice yields equal results.
package schema
