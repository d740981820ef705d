// Package processor drives lookups for the command line. It runs single
// words and batch files through a translation.Translator and prints the
// entries to stdout as they stream in.
package processor
