package molecule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// Formula is an element tally.
type Formula struct {
	counts map[Element]int
}

// NewFormula tallies atoms.  With implicitH, every atom also contributes its
// unused valency as notional hydrogens.
func NewFormula(atoms []*Atom, implicitH bool) Formula {
	f := Formula{counts: make(map[Element]int)}
	for _, a := range atoms {
		f.counts[a.Element]++
		if implicitH {
			if free := a.FreeValency(); free > 0 {
				f.counts[Hydrogen] += free
			}
		}
	}
	return f
}

// FormulaOf builds a formula from explicit counts.  Zero counts are dropped.
func FormulaOf(counts map[Element]int) Formula {
	f := Formula{counts: make(map[Element]int, len(counts))}
	for e, n := range counts {
		if n > 0 {
			f.counts[e] = n
		}
	}
	return f
}

// Count returns the tally for e.
func (f Formula) Count(e Element) int { return f.counts[e] }

// Counts returns a copy of the tallies.
func (f Formula) Counts() map[Element]int {
	out := make(map[Element]int, len(f.counts))
	for e, n := range f.counts {
		out[e] = n
	}
	return out
}

// Elements lists present elements in canonical order: C, H, then the rest
// alphabetically by symbol.
func (f Formula) Elements() []Element {
	var rest []string
	for e, n := range f.counts {
		if n > 0 && e != Carbon && e != Hydrogen {
			rest = append(rest, string(e))
		}
	}
	sort.Strings(rest)

	var out []Element
	if f.counts[Carbon] > 0 {
		out = append(out, Carbon)
	}
	if f.counts[Hydrogen] > 0 {
		out = append(out, Hydrogen)
	}
	for _, s := range rest {
		out = append(out, Element(s))
	}
	return out
}

// Empty reports whether the formula has no atoms.
func (f Formula) Empty() bool { return len(f.Elements()) == 0 }

// Equal compares tallies.
func (f Formula) Equal(g Formula) bool {
	fe, ge := f.Elements(), g.Elements()
	if len(fe) != len(ge) {
		return false
	}
	for i, e := range fe {
		if ge[i] != e || f.counts[e] != g.counts[e] {
			return false
		}
	}
	return true
}

func (f Formula) render(explicitOnes bool) string {
	var sb strings.Builder
	for _, e := range f.Elements() {
		sb.WriteString(string(e))
		n := f.counts[e]
		if n > 1 || explicitOnes {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

// Key is the catalog lookup key: every count printed, including 1
// ("C1H4", "H2O1").
func (f Formula) Key() string { return f.render(true) }

// String is the display form with count 1 omitted ("CH4").
func (f Formula) String() string { return f.render(false) }

// Subscript is String with subscript digit glyphs ("CH₄").
func (f Formula) Subscript() string { return Subscript(f.String()) }

var subscriptDigits = [10]rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

// Subscript replaces ASCII digits in s with subscript glyphs.
func Subscript(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return subscriptDigits[r-'0']
		}
		return r
	}, s)
}

func unsubscript(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '₀' && r <= '₉' {
			return '0' + (r - '₀')
		}
		return r
	}, s)
}

var formulaToken = regexp.MustCompile(`([A-Z][a-z]?)(\d*)`)

// ParseFormula reads any of the three renderings ("C1H4", "CH4", "CH₄").
// A repeated element accumulates.
func ParseFormula(s string) (Formula, error) {
	plain := unsubscript(strings.TrimSpace(s))
	if plain == "" {
		return Formula{}, errors.InvalidParam("empty formula")
	}

	f := Formula{counts: make(map[Element]int)}
	consumed := 0
	for _, m := range formulaToken.FindAllStringSubmatchIndex(plain, -1) {
		if m[0] != consumed {
			return Formula{}, errors.InvalidParam("malformed formula").WithDetail(s)
		}
		consumed = m[1]

		e, err := ParseElement(plain[m[2]:m[3]])
		if err != nil {
			return Formula{}, err
		}
		n := 1
		if m[4] != m[5] {
			n, err = strconv.Atoi(plain[m[4]:m[5]])
			if err != nil {
				return Formula{}, errors.InvalidParam("malformed count").WithDetail(s)
			}
		}
		f.counts[e] += n
	}
	if consumed != len(plain) {
		return Formula{}, errors.InvalidParam("malformed formula").WithDetail(s)
	}
	for e, n := range f.counts {
		if n == 0 {
			delete(f.counts, e)
		}
	}
	return f, nil
}
