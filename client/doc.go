// Package client posts line protocol batches to an InfluxDB 1.x compatible
// /write endpoint.
//
// Values are serialized with the measurement package, one line per value,
// and sent in a single request. A 4xx response becomes a *BadRequestError
// carrying the server's message; any other non-2xx status becomes a
// *ServerError. The client never retries.
package client
