// Package measurement serializes annotated structs into InfluxDB line
// protocol.
//
// A type is resolved once (see package schema) and compiled into a Codec: a
// flat list of steps with every literal, separator and per-kind value writer
// chosen up front. Writing an instance only runs those steps, so the hot path
// never looks at annotations again. Codecs are cached per reflect.Type for the
// life of the process and are safe for concurrent use; callers own the
// destination buffer.
//
// Types processed by measurement-generator carry a generated AppendLine
// method and implement Measurement. AppendLine and AppendBatch prefer that
// method and fall back to the reflected Codec otherwise.
package measurement
