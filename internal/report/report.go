package report

import (
	"github.com/shopspring/decimal"

	"github.com/fxreport-dev/fxreport/internal/model"
)

// Placeholder is rendered for any value the pipeline could not produce.
const Placeholder = "N/A"

// BuildRows joins daily rates and historical means into one ReportRow
// per target currency, in the given fixed order. The two sources are
// independently optional: a currency absent from one still gets a row
// with the other side populated.
func BuildRows(currencies []model.CurrencyCode, daily, means map[model.CurrencyCode]decimal.Decimal) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(currencies))
	for _, c := range currencies {
		row := model.ReportRow{Currency: c}
		if rate, ok := daily[c]; ok {
			row.Rate = decimal.NullDecimal{Decimal: rate, Valid: true}
		}
		if mean, ok := means[c]; ok {
			row.Mean = decimal.NullDecimal{Decimal: mean, Valid: true}
		}
		rows = append(rows, row)
	}
	return rows
}

// formatValue renders a value to a fixed number of decimal places, or
// the placeholder when the value is null.
func formatValue(v decimal.NullDecimal, places int32) string {
	if !v.Valid {
		return Placeholder
	}
	return v.Decimal.StringFixed(places)
}
