package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns 100*num/den rounded to the nearest whole number, ties away
// from zero. A zero denominator yields 0.
func Percent(num, den int) int {
	if den == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(num)).Mul(hundred).Div(decimal.NewFromInt(int64(den)))
	return int(ratio.Round(0).IntPart())
}

// Percent1 is Percent with one decimal place.
func Percent1(num, den int) float64 {
	if den == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(num)).Mul(hundred).Div(decimal.NewFromInt(int64(den)))
	return ratio.Round(1).InexactFloat64()
}

// Round1 rounds f to one decimal place.
func Round1(f float64) float64 {
	return decimal.NewFromFloat(f).Round(1).InexactFloat64()
}

// Mean1 is the arithmetic mean of values rounded to one decimal place.
func Mean1(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(1).InexactFloat64()
}
