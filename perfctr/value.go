package perfctr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Statistic selects a column of a multi-threaded STAT row.
type Statistic int

const (
	Sum Statistic = iota
	Min
	Max
	Avg
)

var statisticNames = [...]string{"Sum", "Min", "Max", "Avg"}

func (s Statistic) String() string {
	if s < 0 || int(s) >= len(statisticNames) {
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
	return statisticNames[s]
}

// ParseStatistic parses a statistic name case-insensitively.
// The empty string selects Sum.
func ParseStatistic(name string) (Statistic, error) {
	if name == "" {
		return Sum, nil
	}
	for i, n := range statisticNames {
		if strings.EqualFold(n, name) {
			return Statistic(i), nil
		}
	}
	return 0, fmt.Errorf("unknown statistic %q", name)
}

type ValueType int

const (
	Float ValueType = iota
	Int
)

func (t ValueType) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// ParseValueType accepts "float" or "int" (and a few aliases).
// The empty string selects Float.
func ParseValueType(name string) (ValueType, error) {
	switch strings.ToLower(name) {
	case "", "float", "float64", "double":
		return Float, nil
	case "int", "int64", "integer":
		return Int, nil
	}
	return 0, fmt.Errorf("unknown value type %q", name)
}

// A Value is a nullable number of a fixed type. The zero Value is a
// null Float.
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Valid bool
}

func IntValue(v int64) Value     { return Value{Type: Int, Int: v, Valid: true} }
func FloatValue(v float64) Value { return Value{Type: Float, Float: v, Valid: true} }
func Null(t ValueType) Value     { return Value{Type: t} }

// String formats v for tabular output. Null values format as "".
// Floats always carry a decimal point so that they stay
// distinguishable from integers.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	if v.Type == Int {
		return strconv.FormatInt(v.Int, 10)
	}
	s := strconv.FormatFloat(v.Float, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// Any returns nil, an int64 or a float64, suitable as a database/sql
// argument.
func (v Value) Any() any {
	if !v.Valid {
		return nil
	}
	if v.Type == Int {
		return v.Int
	}
	return v.Float
}

// Coerce converts a numeric token to a Value of type t.
// Integer tokens written in float notation ("1.2e+06") are truncated.
func Coerce(token string, t ValueType) (Value, error) {
	switch t {
	case Int:
		if n, err := strconv.ParseInt(token, 10, 64); err == nil {
			return IntValue(n), nil
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Null(t), err
		}
		if math.IsNaN(f) || f >= 1<<63 || f < -(1<<63) {
			return Null(t), fmt.Errorf("%q out of int64 range", token)
		}
		return IntValue(int64(f)), nil
	default:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Null(Float), err
		}
		return FloatValue(f), nil
	}
}
