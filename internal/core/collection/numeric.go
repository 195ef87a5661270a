package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/aevon-lab/sift/internal/core/path"
	"github.com/shopspring/decimal"
)

// ToDecimal converts a numeric value to an exact decimal. Strings are not
// numbers here; json.Number is. NaN and infinities are rejected.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, false
		}
		return *val, true
	case decimal.NullDecimal:
		return val.Decimal, val.Valid
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case int32:
		return decimal.NewFromInt32(val), true
	}

	// Named numeric types and the remaining widths.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(f), true
	}
	return decimal.Zero, false
}

// Sum adds up the value at each name across all records using exact decimal
// arithmetic, starting from zero. The result has one entry per distinct name
// in the order requested. Non-numeric values fail the whole call.
func Sum[O any](ctx context.Context, records []O, names ...string) (*OrderedMap[string, decimal.Decimal], error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, invalidArgf("property names are empty")
	}
	for _, n := range names {
		if err := requirePath(n, "property name"); err != nil {
			return nil, err
		}
	}

	sums := NewOrderedMap[string, decimal.Decimal](len(names))
	for _, n := range names {
		sums.Set(n, decimal.Zero)
	}
	distinct := sums.Keys()

	for _, r := range records {
		for _, n := range distinct {
			v, err := resolveAs[any](ctx, r, n)
			if err != nil {
				return nil, err
			}
			d, ok := ToDecimal(v)
			if !ok {
				return nil, &path.ResolutionError{Path: n, Reason: fmt.Sprintf("value %v (%T) is not numeric", v, v)}
			}
			cur, _ := sums.Get(n)
			sums.Set(n, cur.Add(d))
		}
	}
	return sums, nil
}

// Avg divides each Sum by len(records), rounding half away from zero to
// exactly scale fractional digits.
func Avg[O any](ctx context.Context, records []O, scale int32, names ...string) (*OrderedMap[string, decimal.Decimal], error) {
	if scale < 0 {
		return nil, invalidArgf("scale %d is negative", scale)
	}
	sums, err := Sum(ctx, records, names...)
	if err != nil {
		return nil, err
	}

	count := decimal.NewFromInt(int64(len(records)))
	avgs := NewOrderedMap[string, decimal.Decimal](sums.Len())
	for name, total := range sums.All() {
		avgs.Set(name, total.DivRound(count, scale))
	}
	return avgs, nil
}
