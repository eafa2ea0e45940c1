package rates

import (
	"github.com/shopspring/decimal"

	"github.com/fxreport-dev/fxreport/internal/model"
)

// MeanRates computes the arithmetic mean of each currency's valid
// samples. Null samples are excluded from both the sum and the count; a
// series with no valid samples produces no entry at all, so callers can
// tell "no data" apart from a zero rate.
func MeanRates(samples map[model.CurrencyCode][]decimal.NullDecimal) map[model.CurrencyCode]decimal.Decimal {
	means := make(map[model.CurrencyCode]decimal.Decimal, len(samples))
	for c, series := range samples {
		sum := decimal.Zero
		count := 0
		for _, s := range series {
			if !s.Valid {
				continue
			}
			sum = sum.Add(s.Decimal)
			count++
		}
		if count == 0 {
			continue
		}
		means[c] = sum.Div(decimal.NewFromInt(int64(count)))
	}
	return means
}
