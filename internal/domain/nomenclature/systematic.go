package nomenclature

import (
	"sort"
	"strconv"
	"strings"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
)

// MaxSystematicChain is the longest main chain SystematicName can name.
const MaxSystematicChain = 10

type stemSet struct {
	alkane, alkene, alkyne [MaxSystematicChain + 1]string
}

var stemsJA = stemSet{
	alkane: [...]string{"", "メタン", "エタン", "プロパン", "ブタン", "ペンタン", "ヘキサン", "ヘプタン", "オクタン", "ノナン", "デカン"},
	alkene: [...]string{"", "メテン", "エテン", "プロペン", "ブテン", "ペンテン", "ヘキセン", "ヘプテン", "オクテン", "ノネン", "デセン"},
	alkyne: [...]string{"", "メチン", "エチン", "プロピン", "ブチン", "ペンチン", "ヘキシン", "ヘプチン", "オクチン", "ノニン", "デシン"},
}

var stemsEN = func() stemSet {
	roots := [...]string{"", "meth", "eth", "prop", "but", "pent", "hex", "hept", "oct", "non", "dec"}
	var s stemSet
	for i, r := range roots {
		if r == "" {
			continue
		}
		s.alkane[i], s.alkene[i], s.alkyne[i] = r+"ane", r+"ene", r+"yne"
	}
	return s
}()

var multiplierJA = [...]string{"", "", "ジ", "トリ", "テトラ", "ペンタ"}
var multiplierEN = [...]string{"", "", "di", "tri", "tetra", "penta"}

// SystematicName synthesises a simplified substitutive name for a
// hydrocarbon skeleton: the stem follows the main-chain length, its ending
// the highest unsaturation on bonds touching main-chain atoms, and
// substituent prefixes are sorted by name with deduplicated ascending
// locants.  It returns "" when s is not a nameable hydrocarbon.
func SystematicName(s molecule.Structure, l molecule.Language) string {
	if !s.Hydrocarbon || s.ChainLength == 0 || s.ChainLength > MaxSystematicChain {
		return ""
	}

	stems, multipliers := stemsJA, multiplierJA[:]
	if l == molecule.English {
		stems, multipliers = stemsEN, multiplierEN[:]
	}

	base := stems.alkane[s.ChainLength]
	switch {
	case s.MainChainHasOrder(3):
		base = stems.alkyne[s.ChainLength]
	case s.MainChainHasOrder(2):
		base = stems.alkene[s.ChainLength]
	}

	if len(s.Substituents) == 0 {
		return base
	}

	positions := make(map[string]map[int]bool)
	for _, sub := range s.Substituents {
		name := sub.Kind.Name(l)
		if positions[name] == nil {
			positions[name] = make(map[int]bool)
		}
		positions[name][sub.Position] = true
	}
	names := make([]string, 0, len(positions))
	for n := range positions {
		names = append(names, n)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, n := range names {
		locants := make([]int, 0, len(positions[n]))
		for p := range positions[n] {
			locants = append(locants, p)
		}
		sort.Ints(locants)

		strs := make([]string, len(locants))
		for i, p := range locants {
			strs[i] = strconv.Itoa(p)
		}
		prefix := ""
		if c := len(locants); c > 1 && c < len(multipliers) {
			prefix = multipliers[c]
		}
		parts = append(parts, strings.Join(strs, ",")+"-"+prefix+n)
	}
	return strings.Join(parts, "-") + base
}

// isBareAlkane reports a name that is just a saturated stem.
func isBareAlkane(s molecule.Structure) bool {
	return len(s.Substituents) == 0 && !s.MainChainHasOrder(2) && !s.MainChainHasOrder(3)
}
