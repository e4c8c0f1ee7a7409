package parse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// DelimiterMode selects how report lines are tokenized.
type DelimiterMode int

const (
	// ModePipe splits lines on the | delimiter (parsable sreport output).
	ModePipe DelimiterMode = iota
	// ModeWhitespace splits lines on runs of whitespace (plain output).
	ModeWhitespace
)

func (m DelimiterMode) String() string {
	if m == ModePipe {
		return "pipe"
	}
	return "whitespace"
}

// RawMetrics carries the three unparsed fields extracted from the data row.
type RawMetrics struct {
	Reported    string
	Down        string
	PlannedDown string
}

// NoDataRowError means no line in the report matched the data-row shape.
// Raw keeps the full report text for manual inspection.
type NoDataRowError struct {
	Raw string
}

func (e *NoDataRowError) Error() string {
	return "no qualifying data row found in report output"
}

// Title phrase that opens the plain report's banner line.
const reportTitle = "Cluster Utilization"

// Column-header names seen across sreport versions, lowercased. Multi-word
// headers appear both joined (pipe mode) and as separate tokens (whitespace
// mode), so both spellings are listed.
var headerNames = map[string]bool{
	"cluster":   true,
	"allocated": true,
	"alloc":     true,
	"down":      true,
	"plnd":      true,
	"plnd down": true,
	"idle":      true,
	"planned":   true,
	"reserved":  true,
	"reported":  true,
}

// Shape grammar for candidate metric fields: digits with optional comma
// separators, optional decimals, optional single magnitude letter.
var (
	suffixedNumberPattern = regexp.MustCompile(`^[0-9][0-9,]*(\.[0-9]+)?[kmgtpKMGTP]?$`)
	pureNumberPattern     = regexp.MustCompile(`^[0-9][0-9,]*(\.[0-9]+)?$`)
)

// tokenizer splits one report line into fields.
type tokenizer func(line string) []string

func (m DelimiterMode) tokenizer() tokenizer {
	if m == ModePipe {
		return splitPipe
	}
	return strings.Fields
}

func splitPipe(line string) []string {
	fields := strings.Split(line, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	// A line ending in the delimiter yields one trailing empty field.
	if n := len(fields); n > 0 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return fields
}

// skipPredicates classify lines that can never be the data row: blank lines,
// dash separator rows, the report banner, and recognized header rows. Ordered,
// first hit wins.
var skipPredicates = []func(line string, tokens []string) bool{
	func(line string, _ []string) bool { return strings.TrimSpace(line) == "" },
	func(line string, _ []string) bool { return isSeparatorRow(line) },
	func(line string, _ []string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), reportTitle)
	},
	func(_ string, tokens []string) bool { return isHeaderRow(tokens) },
}

func isSeparatorRow(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '-' && r != ' ' {
			return false
		}
	}
	return true
}

func isHeaderRow(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !headerNames[normalizeHeader(tok)] {
			return false
		}
	}
	return true
}

func normalizeHeader(tok string) string {
	return strings.Join(strings.Fields(strings.ToLower(tok)), " ")
}

// isDataRow validates the shape of a candidate row: at least seven fields,
// the first a cluster-name label rather than a number, fields two through
// seven suffixed numbers. Shape validation instead of header matching keeps
// the selector working across sreport versions with differing header text.
func isDataRow(tokens []string) bool {
	if len(tokens) < 7 {
		return false
	}
	if pureNumberPattern.MatchString(tokens[0]) {
		return false
	}
	for _, tok := range tokens[1:7] {
		if !suffixedNumberPattern.MatchString(tok) {
			return false
		}
	}
	return true
}

// SelectMetrics scans the report text line by line and extracts the raw
// Reported, Down and PLND Down fields from the first row matching the
// data-row shape. The scan stops at the first match; if no line qualifies
// the full text is returned inside a NoDataRowError.
//
// Field positions follow sreport's documented order for cluster utilization:
// Cluster, Allocated, Down, PLND Down, Idle, Planned, Reported — so Down is
// field 3, PLND Down field 4 and Reported field 7.
func SelectMetrics(text string, mode DelimiterMode) (RawMetrics, error) {
	tok := mode.tokenizer()
	headerChecked := false

	for _, line := range strings.Split(text, "\n") {
		tokens := tok(line)

		if skipIdx := classify(line, tokens); skipIdx >= 0 {
			// Cross-check declared column order once per report when a pipe
			// header is available (plain headers split multi-word names and
			// shift positions, so only pipe mode is checked).
			if mode == ModePipe && !headerChecked && isHeaderRow(tokens) {
				checkHeaderPositions(tokens)
				headerChecked = true
			}
			continue
		}

		if !isDataRow(tokens) {
			continue
		}
		return RawMetrics{
			Reported:    tokens[6],
			Down:        tokens[2],
			PlannedDown: tokens[3],
		}, nil
	}

	return RawMetrics{}, &NoDataRowError{Raw: text}
}

// classify returns the index of the first matching skip predicate, -1 if the
// line is a candidate row.
func classify(line string, tokens []string) int {
	for i, skip := range skipPredicates {
		if skip(line, tokens) {
			return i
		}
	}
	return -1
}

// checkHeaderPositions warns when a recognized header row declares the Down,
// PLND Down or Reported columns somewhere other than fields 3, 4 and 7. The
// extraction stays position-based regardless; header text is too unstable
// across versions to fail on.
func checkHeaderPositions(tokens []string) {
	if len(tokens) < 7 {
		return
	}
	expected := []struct {
		index int
		name  string
	}{
		{2, "down"},
		{3, "plnd down"},
		{6, "reported"},
	}
	for _, col := range expected {
		if normalizeHeader(tokens[col.index]) != col.name {
			slog.Warn("unexpected column order in report header",
				slog.Int("field", col.index+1),
				slog.String("header", tokens[col.index]),
				slog.String("expected", col.name))
		}
	}
}

// FieldError decorates a MalformedNumberError with the field it came from and
// the raw triple for context.
func FieldError(field string, raw RawMetrics, err error) error {
	return fmt.Errorf("field %s of row (reported=%q down=%q plnd_down=%q): %w",
		field, raw.Reported, raw.Down, raw.PlannedDown, err)
}
