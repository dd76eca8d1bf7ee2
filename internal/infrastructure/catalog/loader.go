// Package catalog loads the reference compound catalog from YAML: the copy
// embedded in the binary, or a file on disk that can be watched for edits.
package catalog

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/nomenclature"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// document is the on-disk layout.
type document struct {
	Entries []nomenclature.Entry `yaml:"entries"`
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]nomenclature.Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCatalogLoad, "cannot decode catalog")
	}
	if len(doc.Entries) == 0 {
		return nil, errors.New(errors.ErrCodeCatalogInvalid, "catalog has no entries")
	}
	return doc.Entries, nil
}

// Embedded returns the entries compiled into the binary.
func Embedded() []nomenclature.Entry {
	entries, err := Parse(embeddedCatalog)
	if err != nil {
		panic("catalog: embedded catalog is broken: " + err.Error())
	}
	return entries
}

// Default builds an in-memory catalog from the embedded entries.
func Default() *nomenclature.MemoryCatalog {
	c, err := nomenclature.NewMemoryCatalog(Embedded())
	if err != nil {
		panic("catalog: embedded catalog is broken: " + err.Error())
	}
	return c
}

// ReadFile reads and decodes the catalog at path.
func ReadFile(path string) ([]nomenclature.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCatalogLoad, "cannot read catalog").WithDetail(path)
	}
	return Parse(data)
}

// LoadFile builds an in-memory catalog from the file at path.
func LoadFile(path string) (*nomenclature.MemoryCatalog, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := nomenclature.NewMemoryCatalog(entries)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "invalid catalog").WithDetail(path)
	}
	return c, nil
}

// Open returns the file catalog at path, or the embedded one when path is
// empty.
func Open(path string) (*nomenclature.MemoryCatalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
