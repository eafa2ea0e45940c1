package model

import "github.com/shopspring/decimal"

// CurrencyCode is a three-letter ISO 4217 currency code, e.g. "USD".
type CurrencyCode string

// DefaultCurrencies returns the currency set the report covers unless
// configuration overrides it.
func DefaultCurrencies() []CurrencyCode {
	return []CurrencyCode{"USD", "SEK", "GBP", "JPY"}
}

// DailyRates is the result of parsing the daily snapshot file.
type DailyRates struct {
	// Rates holds one entry per currency whose cell parsed cleanly.
	Rates map[CurrencyCode]decimal.Decimal
	// Missing lists currencies with no matching header column.
	Missing []CurrencyCode
	// Invalid lists currencies whose cell was empty, "N/A", or non-numeric.
	Invalid []CurrencyCode
	// NonPositive lists currencies whose rate parsed but was <= 0.
	// The rate is still recorded in Rates.
	NonPositive []CurrencyCode
}

// HistoricalSeries is the result of parsing the historical rates file.
// Samples preserve file row order; a null sample marks a cell that was
// missing, unparsable, or non-positive on that date.
type HistoricalSeries struct {
	Samples     map[CurrencyCode][]decimal.NullDecimal
	Missing     []CurrencyCode
	SkippedRows int
}

// ReportRow is one line of the rendered report. Rate and Mean are
// independently optional; a null value renders as a placeholder.
type ReportRow struct {
	Currency CurrencyCode
	Rate     decimal.NullDecimal
	Mean     decimal.NullDecimal
}
