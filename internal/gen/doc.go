// Package gen emits ahead-of-time serializers for resolved measurement types.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. For every type the generated file holds a
// MeasurementName method and an AppendLine method that writes one line of
// line protocol with straight-line code: literals and section separators are
// merged into constant appends and every value goes through the lineproto
// appender chosen for its kind.
//
// Codegen patterns:
//   - Constant appends for the measurement name and separators
//   - Tag stringification by kind or via String()
//   - Typed field appenders (int, uint, float, bool, string, duration)
//   - Timestamps from time.Time or integer nanoseconds
package gen
