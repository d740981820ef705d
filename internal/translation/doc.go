// Package translation is the dictionary entry point. A Translator validates a
// query against its configuration, opens one streaming chat-completion call
// and reports the growing translation to a Sink, finishing with exactly one
// Outcome.
package translation
