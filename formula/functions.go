package formula

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

var errArity = errors.New("wrong number of arguments")

// functions are the spreadsheet functions available to every formula.
var functions = []expr.Option{
	expr.Function("ROUNDUP", roundWith(roundUp)),
	expr.Function("ROUNDDOWN", roundWith(math.Trunc)),
	expr.Function("ROUND", roundWith(math.Round)),
	expr.Function("MIN", fold(math.Min)),
	expr.Function("MAX", fold(math.Max)),
	expr.Function("ABS", func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("ABS: %w: %d", errArity, len(params))
		}

		x, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("ABS: %w", err)
		}

		return math.Abs(x), nil
	}),
}

// roundUp rounds away from zero.
func roundUp(x float64) float64 {
	if x < 0 {
		return math.Floor(x)
	}

	return math.Ceil(x)
}

// roundWith builds FN(value, digits) rounding value at digits decimals.
// Digits may be negative, digits default to 0.
func roundWith(round func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) == 0 || len(params) > 2 {
			return nil, fmt.Errorf("%w: %d", errArity, len(params))
		}

		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}

		digits := 0.0
		if len(params) == 2 {
			if digits, err = toFloat(params[1]); err != nil {
				return nil, err
			}
		}

		scale := math.Pow(10, math.Trunc(digits))

		// snap binary noise: 1.1*100 is 110.00000000000001
		scaled := x * scale
		if r := math.Round(scaled); math.Abs(scaled-r) < 1e-9 {
			scaled = r
		}

		return round(scaled) / scale, nil
	}
}

func fold(fn func(a, b float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) == 0 {
			return nil, fmt.Errorf("%w: 0", errArity)
		}

		acc, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}

		for _, p := range params[1:] {
			x, err := toFloat(p)
			if err != nil {
				return nil, err
			}

			acc = fn(acc, x)
		}

		return acc, nil
	}
}
