package processor

import (
	"fmt"
	"io"
	"strings"

	"github.com/rikkaka/bob-plugin-openai-dictionary/internal/translation"
)

// writerSink prints only the text each partial result adds, so the entry
// appears on the terminal as it streams in.
type writerSink struct {
	w       io.Writer
	printed string
}

func newWriterSink(w io.Writer) *writerSink {
	return &writerSink{w: w}
}

func (s *writerSink) OnStream(r translation.Result) {
	s.write(r.Text())
}

func (s *writerSink) OnCompletion(o translation.Outcome) {
	if o.Result != nil {
		s.write(o.Result.Text())
	}
	if s.printed != "" && !strings.HasSuffix(s.printed, "\n") {
		fmt.Fprintln(s.w)
	}
}

func (s *writerSink) write(text string) {
	if rest, ok := strings.CutPrefix(text, s.printed); ok {
		io.WriteString(s.w, rest)
	} else {
		// Results only grow; start over if one does not extend the last
		fmt.Fprintf(s.w, "\n%s", text)
	}
	s.printed = text
}
