package training

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/aminaaguel/Guess-My-Emotion/internal/emotion"
)

// CorpusStats describes what a corpus load kept and dropped.
type CorpusStats struct {
	Rows    int
	Kept    int
	Skipped int
}

// LoadCorpusCSV reads a CSV corpus with "text" and "emotion" header columns.
// Extra columns are ignored.
func LoadCorpusCSV(path string) ([]emotion.Example, CorpusStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, CorpusStats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return ReadCorpus(f)
}

// ReadCorpus parses a CSV corpus. Rows with blank text are skipped; a row
// with text but no emotion is an error. Both fields are trimmed.
func ReadCorpus(r io.Reader) ([]emotion.Example, CorpusStats, error) {
	var rows []emotion.Example
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, CorpusStats{}, fmt.Errorf("parse corpus: %w", err)
	}

	stats := CorpusStats{Rows: len(rows)}
	out := make([]emotion.Example, 0, len(rows))
	for i, row := range rows {
		row.Text = strings.TrimSpace(row.Text)
		row.Emotion = strings.TrimSpace(row.Emotion)
		if row.Text == "" {
			stats.Skipped++
			continue
		}
		if err := row.Validate(); err != nil {
			// header is line 1
			return nil, stats, fmt.Errorf("corpus line %d: %w", i+2, err)
		}
		out = append(out, row)
	}
	stats.Kept = len(out)
	return out, stats, nil
}
