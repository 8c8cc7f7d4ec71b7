package query

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotNumeric = errors.New("not a number")

// Number is a numeric input that clients send either as a JSON number or
// as a numeric string ("12", "12.5"). Parsing is deferred so that the
// builders can report which field was malformed.
type Number struct {
	raw string
}

// NumberOf wraps s, typically a query-string value.
func NumberOf(s string) *Number {
	return &Number{raw: s}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = unq
	}
	n.raw = s
	return nil
}

func (n Number) String() string { return n.raw }

// Float parses the value. NaN and infinities are rejected.
func (n Number) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(n.raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	return f, nil
}

// Int parses the value and truncates toward zero.
func (n Number) Int() (int64, error) {
	s := strings.TrimSpace(n.raw)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := n.Float()
	if err != nil {
		return 0, err
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, errNotNumeric
	}
	return int64(t), nil
}
