package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/apierr"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/batch"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/cli"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/translation"
	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/transport"
)

// Processor handles the main word lookup logic
type Processor struct {
	flags      *cli.Flags
	translator *translation.Translator
	out        io.Writer
	errOut     io.Writer
}

// NewProcessor creates a new processor from the resolved configuration
func NewProcessor(flags *cli.Flags) *Processor {
	streamer := transport.New(cli.TransportConfig())
	return NewProcessorWith(flags, translation.NewTranslator(cli.RequestConfig(), streamer), os.Stdout, os.Stderr)
}

// NewProcessorWith creates a processor around an existing translator,
// writing entries to out and errors to errOut.
func NewProcessorWith(flags *cli.Flags, translator *translation.Translator, out, errOut io.Writer) *Processor {
	return &Processor{
		flags:      flags,
		translator: translator,
		out:        out,
		errOut:     errOut,
	}
}

// ProcessSingleWord looks up one word and streams the entry to stdout
func (p *Processor) ProcessSingleWord(ctx context.Context, word string) error {
	q := translation.Query{Text: word, From: p.flags.From, To: p.flags.To}

	outcome := p.translator.Translate(ctx, q, newWriterSink(p.out))
	if outcome.Err != nil {
		p.reportError(word, outcome.Err)
		return outcome.Err
	}
	return nil
}

// ProcessBatch looks up every word of the batch file in order. A failed
// lookup does not stop the batch unless the context ends.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(p.out, "\n[%d/%d] %s\n", i+1, len(entries), entry.Word)

		if err := p.ProcessSingleWord(ctx, entry.Word); err != nil {
			logrus.WithFields(logrus.Fields{
				"word": entry.Word,
				"line": entry.Line,
			}).Debug("Batch lookup failed")
			errorCount++
			// Continue with next word
		} else {
			processedCount++
		}
	}

	// Print summary
	fmt.Fprintf(p.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total words: %d\n", len(entries))
	fmt.Fprintf(p.out, "Looked up: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
		return fmt.Errorf("%d of %d lookups failed", errorCount, len(entries))
	}

	return nil
}

func (p *Processor) reportError(word string, e *apierr.Error) {
	fmt.Fprintf(p.errOut, "Error looking up '%s': %s\n", word, e.Message)
	logrus.WithFields(logrus.Fields{
		"kind":   e.Kind,
		"detail": e.Detail,
	}).Debug("Lookup error detail")
}
