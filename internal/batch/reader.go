// Package batch reads translation queries from a file, one per line.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single query line.
const maxLineSize = 1 << 20

// Entry is one query of a batch file.
type Entry struct {
	Query string
	// Line is the 1-based line number in the input.
	Line int
}

// ReadBatchFile reads queries from a file, or from stdin when filename
// is "-". Blank lines and lines starting with '#' are skipped; leading
// and trailing whitespace, including the ideographic space, is removed.
func ReadBatchFile(filename string) ([]Entry, error) {
	if filename == "-" {
		return ReadBatch(os.Stdin)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return ReadBatch(f)
}

// ReadBatch reads queries from r.
func ReadBatch(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []Entry
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if n == 1 {
			line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Query: line, Line: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}

	return entries, nil
}
