package nomenclature

import "github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"

// Tag names a structural predicate an entry requires.
type Tag string

const (
	TagAlkene         Tag = "alkene"
	TagAlkyne         Tag = "alkyne"
	TagHydroxyl       Tag = "hydroxyl"
	TagAlcohol        Tag = "alcohol"
	TagCarbonyl       Tag = "carbonyl"
	TagAldehyde       Tag = "aldehyde"
	TagKetone         Tag = "ketone"
	TagCarboxylicAcid Tag = "carboxylic_acid"
	TagEster          Tag = "ester"
	TagEther          Tag = "ether"
	TagAmino          Tag = "amino"
	TagCis            Tag = "cis"
	TagTrans          Tag = "trans"
)

// Satisfied evaluates t against s.  Tags without a predicate (for example
// "phenol" or "aromatic") are satisfied.
func (t Tag) Satisfied(s molecule.Structure) bool {
	switch t {
	case TagAlkene:
		return s.HasDoubleBond
	case TagAlkyne:
		return s.HasTripleBond
	case TagHydroxyl, TagAlcohol:
		return s.HasGroup(molecule.GroupHydroxyl)
	case TagCarbonyl:
		return s.HasGroup(molecule.GroupFormyl) || s.HasGroup(molecule.GroupCarbonyl)
	case TagAldehyde:
		return s.HasGroup(molecule.GroupFormyl)
	case TagKetone:
		return s.HasGroup(molecule.GroupCarbonyl)
	case TagCarboxylicAcid:
		return s.HasGroup(molecule.GroupCarboxyl)
	case TagEster:
		return s.HasGroup(molecule.GroupEster)
	case TagEther:
		return s.HasGroup(molecule.GroupEther)
	case TagAmino:
		return s.HasGroup(molecule.GroupAmino)
	case TagCis:
		return s.IsCis()
	case TagTrans:
		return s.IsTrans()
	}
	return true
}

// Matches reports whether every tag of e is satisfied.  Untagged entries
// never match.
func Matches(e Entry, s molecule.Structure) bool {
	if len(e.Tags) == 0 {
		return false
	}
	for _, t := range e.Tags {
		if !Tag(t).Satisfied(s) {
			return false
		}
	}
	return true
}
