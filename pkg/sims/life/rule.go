package life

import (
	"errors"
	"fmt"
	"strings"
)

// Rule is a totalistic birth/survive rule over Moore-neighborhood counts.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is the classic B3/S23 rule.
var Conway = NewRule([]int{3}, []int{2, 3})

// NewRule builds a Rule from neighbor counts. Counts outside [0,8] are ignored.
func NewRule(birth, survive []int) Rule {
	var r Rule
	for _, n := range birth {
		if n >= 0 && n <= 8 {
			r.Birth[n] = true
		}
	}
	for _, n := range survive {
		if n >= 0 && n <= 8 {
			r.Survive[n] = true
		}
	}
	return r
}

// String renders the rule in B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n, on := range r.Birth {
		if on {
			b.WriteByte(byte('0' + n))
		}
	}
	b.WriteString("/S")
	for n, on := range r.Survive {
		if on {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

// ParseRule accepts "B3/S23" style notation (parts in either order, any case)
// and the legacy "23/3" survive/birth form.
func ParseRule(s string) (Rule, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("rule %q: expected two parts separated by '/'", s)
	}
	var birth, survive []int
	var haveBirth, haveSurvive bool
	for i, part := range parts {
		var target *[]int
		switch {
		case strings.HasPrefix(part, "B"):
			target, haveBirth = &birth, true
			part = part[1:]
		case strings.HasPrefix(part, "S"):
			target, haveSurvive = &survive, true
			part = part[1:]
		case i == 0:
			target, haveSurvive = &survive, true
		default:
			target, haveBirth = &birth, true
		}
		counts, err := parseCounts(part)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: %w", s, err)
		}
		*target = append(*target, counts...)
	}
	if !haveBirth || !haveSurvive {
		return Rule{}, fmt.Errorf("rule %q: needs one birth and one survive part", s)
	}
	return NewRule(birth, survive), nil
}

var errCount = errors.New("neighbor counts must be digits 0-8")

func parseCounts(s string) ([]int, error) {
	counts := make([]int, 0, len(s))
	for _, ch := range s {
		if ch < '0' || ch > '8' {
			return nil, errCount
		}
		counts = append(counts, int(ch-'0'))
	}
	return counts, nil
}
