// Package lineproto encodes single values into the InfluxDB line protocol.
//
// It owns the value-level grammar only: key escaping, tag values, typed
// field values and timestamps. Sequencing a whole line (measurement name,
// section separators) is done by the measurement package and by generated
// code, both of which call the Append* functions here.
//
// All functions append to a caller-owned byte slice and return the extended
// slice, the same way strconv.Append* does:
//
//	dst = lineproto.AppendTag(dst, "region", "us east") // region=us\ east
//	dst = lineproto.AppendIntField(dst, "amount", 3)    // amount=3i
//	dst = lineproto.AppendTimestamp(dst, time.Unix(1, 0)) // 1000000000
package lineproto
