// Package nomenclature turns analyzed molecules into display names: formula
// lookup against a reference catalog, tag-based isomer disambiguation and a
// simplified systematic name for hydrocarbon skeletons.
package nomenclature

import (
	"sync"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// Entry is one reference compound.  Entries are immutable once loaded.
type Entry struct {
	Formula           string   `yaml:"formula" json:"formula"`
	Name              string   `yaml:"name" json:"name"`
	NameEN            string   `yaml:"name_en,omitempty" json:"name_en,omitempty"`
	StructuralFormula string   `yaml:"structural_formula" json:"structural_formula"`
	Notes             string   `yaml:"notes,omitempty" json:"notes,omitempty"`
	Tags              []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// DisplayName is the entry name in l, falling back to the Japanese name.
func (e Entry) DisplayName(l molecule.Language) string {
	if l == molecule.English && e.NameEN != "" {
		return e.NameEN
	}
	return e.Name
}

// Catalog is the read-only reference data consulted by the Namer.
type Catalog interface {
	// Lookup returns every entry whose formula key equals key, in catalog order.
	Lookup(key string) []Entry
	// Entries returns the whole catalog in order.
	Entries() []Entry
}

// ─────────────────────────────────────────────────────────────────────────────
// In-memory catalog
// ─────────────────────────────────────────────────────────────────────────────

// MemoryCatalog indexes entries by normalised formula key.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries []Entry
	byKey   map[string][]int
}

// NewMemoryCatalog validates and indexes entries.  Formula keys are parsed and
// re-rendered so that element order in the source does not matter.
func NewMemoryCatalog(entries []Entry) (*MemoryCatalog, error) {
	c := &MemoryCatalog{}
	if err := c.Replace(entries); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps the catalog contents atomically.  On error the previous
// contents stay in place.
func (c *MemoryCatalog) Replace(entries []Entry) error {
	normalised := make([]Entry, len(entries))
	byKey := make(map[string][]int, len(entries))

	for i, e := range entries {
		if e.Name == "" {
			return errors.New(errors.ErrCodeCatalogInvalid, "catalog entry without name").WithDetail(e.Formula)
		}
		f, err := molecule.ParseFormula(e.Formula)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeCatalogInvalid, "bad catalog formula").WithDetail(e.Formula)
		}
		e.Formula = f.Key()
		e.Tags = append([]string(nil), e.Tags...)
		normalised[i] = e
		byKey[e.Formula] = append(byKey[e.Formula], i)
	}

	c.mu.Lock()
	c.entries = normalised
	c.byKey = byKey
	c.mu.Unlock()
	return nil
}

// Lookup implements Catalog.
func (c *MemoryCatalog) Lookup(key string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.byKey[key]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = c.entries[j]
	}
	return out
}

// Entries implements Catalog.
func (c *MemoryCatalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Entry(nil), c.entries...)
}

// Len is the number of entries.
func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Find resolves a formula in any rendering and returns the matching entries.
func Find(c Catalog, formula string) ([]Entry, error) {
	f, err := molecule.ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	entries := c.Lookup(f.Key())
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeCatalogEntryNotFound, "no reference compound for formula").WithDetail(f.Key())
	}
	return entries, nil
}
