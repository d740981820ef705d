// Package batch reads word lists for batch lookups.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// WordEntry is one word or phrase to look up
type WordEntry struct {
	Word string
	// Line is the 1-based line number in the batch file
	Line int
}

// ReadBatchFile reads words from a file and returns WordEntry slice.
// Each non-blank line is one lookup; lines starting with '#' are comments.
// Duplicate words are kept so the output lines up with the input.
func ReadBatchFile(filename string) ([]WordEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseWords(string(content)), nil
}

// ParseWords splits batch file content into entries
func ParseWords(content string) []WordEntry {
	content = strings.TrimPrefix(content, "\ufeff")

	var entries []WordEntry
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, WordEntry{Word: line, Line: i + 1})
	}
	return entries
}
