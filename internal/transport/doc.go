// Package transport opens the single streaming HTTP POST of a translation.
//
// Response bytes are handed to the caller as raw fragments in arrival order,
// exactly as they were read from the connection. Calls run behind a circuit
// breaker so a failing backend is not hammered by batch lookups.
package transport
