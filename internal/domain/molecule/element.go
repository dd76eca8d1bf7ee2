package molecule

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// Element is an atomic symbol supported by the drawing surface.
type Element string

const (
	Carbon   Element = "C"
	Hydrogen Element = "H"
	Oxygen   Element = "O"
	Nitrogen Element = "N"
	Chlorine Element = "Cl"
	Bromine  Element = "Br"
	Iodine   Element = "I"
)

var valency = map[Element]int{
	Carbon:   4,
	Oxygen:   2,
	Hydrogen: 1,
	Nitrogen: 3,
	Chlorine: 1,
	Bromine:  1,
	Iodine:   1,
}

// Elements lists the supported elements.
func Elements() []Element {
	return []Element{Carbon, Hydrogen, Oxygen, Nitrogen, Chlorine, Bromine, Iodine}
}

// Valency is the maximum total bond order the element supports; 0 for
// unknown symbols.
func (e Element) Valency() int { return valency[e] }

// Valid reports whether e is a supported element.
func (e Element) Valid() bool {
	_, ok := valency[e]
	return ok
}

// IsHalogen reports whether e is Cl, Br or I.
func (e Element) IsHalogen() bool {
	return e == Chlorine || e == Bromine || e == Iodine
}

func (e Element) String() string { return string(e) }

// ParseElement validates a symbol.
func ParseElement(s string) (Element, error) {
	e := Element(s)
	if !e.Valid() {
		return "", errors.New(errors.ErrCodeUnknownElement, "unknown element").WithDetail(s)
	}
	return e, nil
}

// BondSymbol renders a bond order as "-", "=" or "#".
func BondSymbol(order int) string {
	switch order {
	case 2:
		return "="
	case 3:
		return "#"
	}
	return "-"
}
