package perfctr

import (
	"fmt"
	"regexp"
)

// A ValueError reports a table cell that matched a metric row but could
// not be converted to the requested type.
type ValueError struct {
	Metric string
	Token  string
	Type   ValueType
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("metric %q: cannot convert %q to %v: %v", e.Metric, e.Token, e.Type, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// A matcher looks for one table shape. It returns the raw cell for the
// requested statistic, or ok == false if the shape does not occur.
type matcher func(block string, stat Statistic) (token string, ok bool)

// Table rows never span lines, so cell padding is matched with [ \t]
// only.
const (
	pad    = `[ \t]*`
	number = pad + `([\d.e+-]+)` + pad + `\|`
)

// statMatcher matches the summary row printed for multi-threaded runs:
//
//	| RETIRED_INSTRUCTIONS STAT | PMC1 | 4000 | 900 | 1100 | 1000 |
//	| CPI STAT                  | 1.6  | 0.39 | 0.41 | 0.4  |
//
// Event tables carry a counter column, metric tables do not.
func statMatcher(quoted string) matcher {
	re := regexp.MustCompile(`\|` + pad + quoted + pad + `STAT` + pad + `\|(?:[^|\n]*\|)?` + number + number + number + number)
	return func(block string, stat Statistic) (string, bool) {
		if stat < Sum || stat > Avg {
			return "", false
		}
		m := re.FindStringSubmatch(block)
		if m == nil {
			return "", false
		}
		return m[1+int(stat)], true
	}
}

// counterMatcher matches a single-threaded event row:
//
//	| RETIRED_INSTRUCTIONS | PMC1 | 1234 |
func counterMatcher(quoted string) matcher {
	re := regexp.MustCompile(`\|` + pad + quoted + pad + `\|[^|\n]+\|` + number)
	return func(block string, _ Statistic) (string, bool) {
		m := re.FindStringSubmatch(block)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}

// derivedMatcher matches a single-threaded metric row:
//
//	| CPI | 0.4 |
func derivedMatcher(quoted string) matcher {
	re := regexp.MustCompile(`\|` + pad + quoted + pad + `\|` + number)
	return func(block string, _ Statistic) (string, bool) {
		m := re.FindStringSubmatch(block)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}

// An Extractor pulls one metric out of run blocks. It is safe for
// concurrent use.
type Extractor struct {
	metric   string
	matchers []matcher
}

func NewExtractor(metric string) *Extractor {
	quoted := regexp.QuoteMeta(metric)
	return &Extractor{
		metric: metric,
		matchers: []matcher{
			statMatcher(quoted),
			counterMatcher(quoted),
			derivedMatcher(quoted),
		},
	}
}

func (e *Extractor) Metric() string { return e.metric }

// Extract returns the metric value found in block, or a null Value if
// no table row names the metric. The first matching table shape wins;
// if its cell does not convert to t, Extract returns a null Value and a
// *ValueError.
func (e *Extractor) Extract(block string, stat Statistic, t ValueType) (Value, error) {
	for _, match := range e.matchers {
		token, ok := match(block, stat)
		if !ok {
			continue
		}
		v, err := Coerce(token, t)
		if err != nil {
			return Null(t), &ValueError{Metric: e.metric, Token: token, Type: t, Err: err}
		}
		return v, nil
	}
	return Null(t), nil
}

// ExtractMetric is a convenience wrapper for one-off lookups.
func ExtractMetric(block, metric string, stat Statistic, t ValueType) (Value, error) {
	return NewExtractor(metric).Extract(block, stat, t)
}
