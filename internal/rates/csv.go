package rates

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fxreport-dev/fxreport/internal/model"
)

// ErrNoHeader indicates the file had no usable header row.
var ErrNoHeader = errors.New("no header row found")

// ErrNoDataRow indicates the daily file had a header but no data row.
var ErrNoDataRow = errors.New("no data row found")

// placeholder is the cell value the ECB feed uses for unavailable rates.
const placeholder = "N/A"

// Options control how the rate CSV files are read.
type Options struct {
	// Currencies is the target set; columns outside it are ignored.
	Currencies []model.CurrencyCode
	// Delimiter is the field delimiter. Zero means sniff it from the
	// header line (semicolon wins if it outnumbers commas).
	Delimiter rune
}

// ParseDaily reads the daily snapshot: one header row naming currency
// columns, one data row of rates. Missing columns and unparsable cells
// are recorded, not treated as errors.
func ParseDaily(r io.Reader, opts Options) (*model.DailyRates, error) {
	cr, err := newReader(r, opts)
	if err != nil {
		return nil, err
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("daily rates: %w", ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("reading daily header: %w", err)
	}

	row, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("daily rates: %w", ErrNoDataRow)
	}
	if err != nil {
		return nil, fmt.Errorf("reading daily data row: %w", err)
	}

	cols := resolveColumns(header, opts.Currencies)

	result := &model.DailyRates{
		Rates: make(map[model.CurrencyCode]decimal.Decimal, len(cols)),
	}
	for _, c := range opts.Currencies {
		idx, ok := cols[c]
		if !ok {
			result.Missing = append(result.Missing, c)
			continue
		}
		if idx >= len(row) {
			result.Invalid = append(result.Invalid, c)
			continue
		}
		rate, ok := parseRate(row[idx])
		if !ok {
			result.Invalid = append(result.Invalid, c)
			continue
		}
		if rate.Sign() <= 0 {
			result.NonPositive = append(result.NonPositive, c)
		}
		result.Rates[c] = rate
	}
	return result, nil
}

// ParseHistorical reads the historical series: one header row, then one
// data row per date. Each row contributes one sample per resolved
// currency; unusable cells become null samples so row alignment is kept.
// Rows whose field count does not match the header are skipped and
// counted, never fatal.
func ParseHistorical(r io.Reader, opts Options) (*model.HistoricalSeries, error) {
	cr, err := newReader(r, opts)
	if err != nil {
		return nil, err
	}
	// Lock the field count to the header's so malformed rows surface
	// as per-row errors we can skip.
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("historical rates: %w", ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("reading historical header: %w", err)
	}

	cols := resolveColumns(header, opts.Currencies)

	result := &model.HistoricalSeries{
		Samples: make(map[model.CurrencyCode][]decimal.NullDecimal, len(cols)),
	}
	for _, c := range opts.Currencies {
		if _, ok := cols[c]; !ok {
			result.Missing = append(result.Missing, c)
		} else {
			result.Samples[c] = nil
		}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.SkippedRows++
			continue
		}
		for c, idx := range cols {
			var sample decimal.NullDecimal
			if rate, ok := parseRate(row[idx]); ok && rate.Sign() > 0 {
				sample = decimal.NullDecimal{Decimal: rate, Valid: true}
			}
			result.Samples[c] = append(result.Samples[c], sample)
		}
	}
	return result, nil
}

// newReader wraps r in a csv.Reader with the delimiter resolved.
func newReader(r io.Reader, opts Options) (*csv.Reader, error) {
	br := bufio.NewReader(r)

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(br)
	}
	if delim != ',' && delim != ';' {
		return nil, fmt.Errorf("unsupported delimiter %q", delim)
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr, nil
}

// sniffDelimiter inspects the first line without consuming it. The ECB
// publishes comma-separated files, but mirrored feeds re-export with
// semicolons.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// resolveColumns builds the currency-to-column lookup once per file.
// Header matching is case-insensitive and whitespace-trimmed; the first
// matching column wins.
func resolveColumns(header []string, currencies []model.CurrencyCode) map[model.CurrencyCode]int {
	cols := make(map[model.CurrencyCode]int, len(currencies))
	for _, c := range currencies {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), string(c)) {
				cols[c] = i
				break
			}
		}
	}
	return cols
}

// parseRate parses one cell. Empty cells and the feed's "N/A" marker
// report false rather than an error.
func parseRate(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, placeholder) {
		return decimal.Decimal{}, false
	}
	rate, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return rate, true
}
