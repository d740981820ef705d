// Package stream reassembles server-sent-event records from the raw text
// fragments of a chat-completion response and decodes them into translation
// deltas.
//
// Fragment boundaries are arbitrary: a fragment may carry several records or
// only part of one. The Reassembler buffers until a full line is available,
// so the decoded sequence is the same for every splitting of the same bytes.
package stream
