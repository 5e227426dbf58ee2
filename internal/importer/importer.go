package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avelling/resman/internal/domain"
	"github.com/avelling/resman/internal/logger"
	"github.com/avelling/resman/internal/store"
)

// ErrDecode is returned when the uploaded bytes are not valid UTF-8 text.
// It is the only fatal parse failure; everything else is reported per line.
var ErrDecode = errors.New("file is not valid UTF-8 text")

// Report is the outcome of one import run. Partial success is the normal
// case: every valid line is inserted even when other lines fail.
type Report struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// Importer parses newline-delimited "url:login:pass" text and inserts one
// record per valid line.
type Importer struct {
	store  store.ResourceStore
	logger logger.Logger
}

func New(s store.ResourceStore, log logger.Logger) *Importer {
	return &Importer{
		store:  s,
		logger: log,
	}
}

// Run parses data and inserts a record for every valid line.
//
// Lines are numbered 1-indexed over the trimmed text. Blank lines are
// skipped without an error. Each non-empty line is split from the RIGHT on
// ':' into at most 3 segments, so a URL may itself contain colons
// (scheme, port) as long as login and password do not. Per-line problems
// accumulate in the report; only a decode failure or a store failure
// aborts the run. Inserts already performed are never rolled back.
func (imp *Importer) Run(ctx context.Context, data []byte) (Report, error) {
	rep := Report{Errors: []string{}}

	if !utf8.Valid(data) {
		return rep, ErrDecode
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return rep, nil
	}

	for n, raw := range strings.Split(text, "\n") {
		lineNo := n + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		parts := splitRight(line, ':', 3)
		if len(parts) != 3 {
			rep.Errors = append(rep.Errors, fmt.Sprintf("Line %d: invalid format (expected url:login:pass)", lineNo))
			continue
		}

		url := strings.TrimSpace(parts[0])
		login := strings.TrimSpace(parts[1])
		password := strings.TrimSpace(parts[2])

		if url == "" || login == "" || password == "" {
			rep.Errors = append(rep.Errors, fmt.Sprintf("Line %d: empty fields", lineNo))
			continue
		}

		res := domain.NewResource(url, login, password)
		if err := imp.store.Insert(ctx, res); err != nil {
			return rep, fmt.Errorf("insert line %d: %w", lineNo, err)
		}
		rep.Imported++
	}

	imp.logger.Info("import finished",
		logger.Int("imported", rep.Imported),
		logger.Int("rejected", len(rep.Errors)))

	return rep, nil
}

// splitRight splits s on sep scanning from the end, producing at most max
// segments in original order. The leftmost segment keeps any remaining
// separators, mirroring Python's str.rsplit(sep, max-1).
func splitRight(s string, sep byte, max int) []string {
	parts := make([]string, 0, max)
	for len(parts) < max-1 {
		i := strings.LastIndexByte(s, sep)
		if i < 0 {
			break
		}
		parts = append(parts, s[i+1:])
		s = s[:i]
	}
	parts = append(parts, s)

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}
