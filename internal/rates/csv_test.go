package rates

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxreport-dev/fxreport/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func targetOpts() Options {
	return Options{Currencies: []model.CurrencyCode{"USD", "SEK", "GBP", "JPY"}}
}

func TestParseDailyBasic(t *testing.T) {
	// ECB daily layout: padded cells, extra columns, trailing comma.
	input := "Date, USD, JPY, BGN, SEK, GBP, \n30 August 2026, 1.10, 147.25, 1.9558, 11.50, 0.85, \n"

	daily, err := ParseDaily(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	require.Len(t, daily.Rates, 4)
	assert.True(t, daily.Rates["USD"].Equal(dec("1.10")))
	assert.True(t, daily.Rates["SEK"].Equal(dec("11.50")))
	assert.True(t, daily.Rates["GBP"].Equal(dec("0.85")))
	assert.True(t, daily.Rates["JPY"].Equal(dec("147.25")))
	assert.Empty(t, daily.Missing)
	assert.Empty(t, daily.Invalid)
	assert.Empty(t, daily.NonPositive)
}

func TestParseDailyMissingColumn(t *testing.T) {
	input := "Date,USD,SEK,GBP\n2026-08-30,1.10,11.50,0.85\n"

	daily, err := ParseDaily(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	assert.Len(t, daily.Rates, 3)
	assert.NotContains(t, daily.Rates, model.CurrencyCode("JPY"))
	assert.Equal(t, []model.CurrencyCode{"JPY"}, daily.Missing)
}

func TestParseDailyInvalidCells(t *testing.T) {
	input := "USD,SEK,GBP,JPY\nN/A,abc,0.85,\n"

	daily, err := ParseDaily(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	require.Len(t, daily.Rates, 1)
	assert.True(t, daily.Rates["GBP"].Equal(dec("0.85")))
	assert.ElementsMatch(t, []model.CurrencyCode{"USD", "SEK", "JPY"}, daily.Invalid)
}

func TestParseDailyNonPositiveKept(t *testing.T) {
	input := "USD,SEK\n-1.10,11.50\n"

	daily, err := ParseDaily(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	// Non-positive rates are recorded but flagged for a warning.
	assert.True(t, daily.Rates["USD"].Equal(dec("-1.10")))
	assert.Equal(t, []model.CurrencyCode{"USD"}, daily.NonPositive)
}

func TestParseDailyEmptyFile(t *testing.T) {
	_, err := ParseDaily(strings.NewReader(""), targetOpts())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseDailyHeaderOnly(t *testing.T) {
	_, err := ParseDaily(strings.NewReader("USD,SEK,GBP,JPY\n"), targetOpts())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDataRow)
}

func TestParseDailySemicolonSniffed(t *testing.T) {
	input := "Date;USD;SEK\n2026-08-30;1.10;11.50\n"

	daily, err := ParseDaily(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	assert.True(t, daily.Rates["USD"].Equal(dec("1.10")))
	assert.True(t, daily.Rates["SEK"].Equal(dec("11.50")))
}

func TestParseDailyPinnedDelimiter(t *testing.T) {
	opts := targetOpts()
	opts.Delimiter = ';'

	// Comma inside a cell must not split when semicolon is pinned.
	input := "Label;USD\na,b;1.10\n"
	daily, err := ParseDaily(strings.NewReader(input), opts)
	require.NoError(t, err)
	assert.True(t, daily.Rates["USD"].Equal(dec("1.10")))
}

func TestParseDailyHeaderMatchLoose(t *testing.T) {
	// Lowercase and padded header names still resolve.
	input := " usd , Sek ,gbp\n1.10,11.50,0.85\n"

	daily, err := ParseDaily(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	assert.True(t, daily.Rates["USD"].Equal(dec("1.10")))
	assert.True(t, daily.Rates["SEK"].Equal(dec("11.50")))
	assert.True(t, daily.Rates["GBP"].Equal(dec("0.85")))
}

func TestParseHistoricalBasic(t *testing.T) {
	input := "Date,USD,SEK\n2026-08-28,1.05,11.40\n2026-08-29,1.15,11.60\n"

	hist, err := ParseHistorical(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	require.Len(t, hist.Samples["USD"], 2)
	assert.True(t, hist.Samples["USD"][0].Valid)
	assert.True(t, hist.Samples["USD"][0].Decimal.Equal(dec("1.05")))
	assert.True(t, hist.Samples["USD"][1].Decimal.Equal(dec("1.15")))
	require.Len(t, hist.Samples["SEK"], 2)
	assert.ElementsMatch(t, []model.CurrencyCode{"GBP", "JPY"}, hist.Missing)
	assert.Zero(t, hist.SkippedRows)
}

func TestParseHistoricalNullSamplesKeepAlignment(t *testing.T) {
	input := "Date,USD\n2026-08-27,1.05\n2026-08-28,N/A\n2026-08-29,abc\n2026-08-30,1.15\n"

	hist, err := ParseHistorical(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	samples := hist.Samples["USD"]
	require.Len(t, samples, 4)
	assert.True(t, samples[0].Valid)
	assert.False(t, samples[1].Valid)
	assert.False(t, samples[2].Valid)
	assert.True(t, samples[3].Valid)
}

func TestParseHistoricalNonPositiveBecomesNull(t *testing.T) {
	input := "Date,USD\n2026-08-29,-1.05\n2026-08-30,0\n"

	hist, err := ParseHistorical(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	samples := hist.Samples["USD"]
	require.Len(t, samples, 2)
	assert.False(t, samples[0].Valid)
	assert.False(t, samples[1].Valid)
}

func TestParseHistoricalSkipsMalformedRows(t *testing.T) {
	input := "Date,USD,SEK\n2026-08-28,1.05,11.40\n2026-08-29,1.10\n2026-08-30,1.15,11.60\n"

	hist, err := ParseHistorical(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	assert.Equal(t, 1, hist.SkippedRows)
	require.Len(t, hist.Samples["USD"], 2)
	assert.True(t, hist.Samples["USD"][0].Decimal.Equal(dec("1.05")))
	assert.True(t, hist.Samples["USD"][1].Decimal.Equal(dec("1.15")))
}

func TestParseHistoricalHeaderOnly(t *testing.T) {
	hist, err := ParseHistorical(strings.NewReader("Date,USD,SEK,GBP,JPY\n"), targetOpts())
	require.NoError(t, err)

	assert.Empty(t, hist.Samples["USD"])
	assert.Empty(t, hist.Missing)
	assert.Zero(t, hist.SkippedRows)
}

func TestParseHistoricalEmptyFile(t *testing.T) {
	_, err := ParseHistorical(strings.NewReader(""), targetOpts())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseHistoricalMissingCurrency(t *testing.T) {
	input := "Date,USD\n2026-08-30,1.10\n"

	hist, err := ParseHistorical(strings.NewReader(input), targetOpts())
	require.NoError(t, err)

	assert.ElementsMatch(t, []model.CurrencyCode{"SEK", "GBP", "JPY"}, hist.Missing)
	assert.NotContains(t, hist.Samples, model.CurrencyCode("JPY"))
}
