package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Ratio is a derived metric that may be undefined. Division by a zero
// denominator yields an undefined Ratio instead of Inf/NaN. Undefined ratios
// order above every defined value so data-quality gaps surface at the top of
// descending rankings.
type Ratio struct {
	Value   float64
	Defined bool
}

// Undefined is the divide-by-zero sentinel.
var Undefined = Ratio{}

// Of wraps a finite value. Non-finite input is treated as undefined.
func Of(v float64) Ratio {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Ratio{Value: v, Defined: true}
}

// Div returns num/den, or Undefined when den is zero.
func Div(num, den float64) Ratio {
	if den == 0 {
		return Undefined
	}
	return Of(num / den)
}

// DivRatio divides two ratios; undefined operands propagate.
func DivRatio(num, den Ratio) Ratio {
	if !num.Defined || !den.Defined {
		return Undefined
	}
	return Div(num.Value, den.Value)
}

// Scale multiplies a defined ratio by k.
func (r Ratio) Scale(k float64) Ratio {
	if !r.Defined {
		return Undefined
	}
	return Of(r.Value * k)
}

// Compare returns -1, 0 or +1. Undefined compares greater than any defined value
// and equal to another undefined value.
func (r Ratio) Compare(o Ratio) int {
	switch {
	case !r.Defined && !o.Defined:
		return 0
	case !r.Defined:
		return 1
	case !o.Defined:
		return -1
	case r.Value < o.Value:
		return -1
	case r.Value > o.Value:
		return 1
	}
	return 0
}

// Float returns the value, or NaN when undefined.
func (r Ratio) Float() float64 {
	if !r.Defined {
		return math.NaN()
	}
	return r.Value
}

// String formats the ratio for tables.
func (r Ratio) String() string {
	if !r.Defined {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', 4, 64)
}

// MarshalJSON encodes undefined as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes null as undefined.
func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Of(v)
	return nil
}

// MarshalYAML encodes undefined as null.
func (r Ratio) MarshalYAML() (any, error) {
	if !r.Defined {
		return nil, nil
	}
	return r.Value, nil
}
