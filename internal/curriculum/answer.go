package curriculum

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the representation held by an Answer.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindString
	KindBool
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSet:
		return "set"
	default:
		return "none"
	}
}

// Answer is a tagged answer value. Expected answers come from the lesson
// table; submitted answers usually arrive as strings from the UI.
type Answer struct {
	kind Kind
	num  float64
	str  string
	b    bool
	set  []Answer
}

// Number returns a numeric answer.
func Number(v float64) Answer { return Answer{kind: KindNumber, num: v} }

// Text returns a string answer.
func Text(s string) Answer { return Answer{kind: KindString, str: s} }

// Bool returns a boolean answer.
func Bool(v bool) Answer { return Answer{kind: KindBool, b: v} }

// Set returns an answer accepting any of the given values.
func Set(values ...Answer) Answer {
	return Answer{kind: KindSet, set: append([]Answer(nil), values...)}
}

// Kind returns the answer's tag.
func (a Answer) Kind() Kind { return a.kind }

// IsZero reports whether the answer holds no value.
func (a Answer) IsZero() bool { return a.kind == KindNone }

// Members returns the acceptable values of a set answer.
func (a Answer) Members() []Answer {
	if a.kind != KindSet {
		return nil
	}
	return append([]Answer(nil), a.set...)
}

// Float returns the numeric value of the answer. Numeric strings,
// including simple fractions like "3/4", are numeric.
func (a Answer) Float() (float64, bool) {
	switch a.kind {
	case KindNumber:
		return a.num, true
	case KindString:
		return parseNumber(a.str)
	default:
		return 0, false
	}
}

// Truth returns the boolean value of the answer. The strings "true" and
// "false" (any case) are boolean.
func (a Answer) Truth() (bool, bool) {
	switch a.kind {
	case KindBool:
		return a.b, true
	case KindString:
		switch strings.ToLower(strings.TrimSpace(a.str)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// String formats the answer for display and for choice labels.
func (a Answer) String() string {
	switch a.kind {
	case KindNumber:
		return strconv.FormatFloat(a.num, 'f', -1, 64)
	case KindString:
		return a.str
	case KindBool:
		return strconv.FormatBool(a.b)
	case KindSet:
		parts := make([]string, len(a.set))
		for i, m := range a.set {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	default:
		return ""
	}
}

// Equal compares two answers by tag. A numeric string equals a number with
// the same value; "true"/"false" strings equal booleans. Strings compare
// after trimming whitespace. Mismatched tags are unequal.
func (a Answer) Equal(b Answer) bool {
	if a.kind == KindSet || b.kind == KindSet {
		return false
	}
	if x, ok := a.Float(); ok {
		if y, ok := b.Float(); ok {
			return x == y
		}
	}
	if x, ok := a.Truth(); ok && (a.kind == KindBool || b.kind == KindBool) {
		if y, ok := b.Truth(); ok {
			return x == y
		}
		return false
	}
	if a.kind == KindString && b.kind == KindString {
		return strings.TrimSpace(a.str) == strings.TrimSpace(b.str)
	}
	return false
}

// MarshalJSON encodes the answer as its natural JSON type.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case KindNumber:
		return json.Marshal(a.num)
	case KindString:
		return json.Marshal(a.str)
	case KindBool:
		return json.Marshal(a.b)
	case KindSet:
		return json.Marshal(a.set)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON number, string, boolean or array.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	v, err := fromAny(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func fromAny(raw any) (Answer, error) {
	switch v := raw.(type) {
	case nil:
		return Answer{}, nil
	case float64:
		return Number(v), nil
	case string:
		return Text(v), nil
	case bool:
		return Bool(v), nil
	case []any:
		members := make([]Answer, 0, len(v))
		for _, item := range v {
			m, err := fromAny(item)
			if err != nil {
				return Answer{}, err
			}
			if m.kind == KindSet {
				return Answer{}, fmt.Errorf("nested answer sets are not supported")
			}
			members = append(members, m)
		}
		return Set(members...), nil
	default:
		return Answer{}, fmt.Errorf("unsupported answer type %T", raw)
	}
}

// parseNumber parses decimals and simple fractions.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return float64(n) / float64(d), true
}
