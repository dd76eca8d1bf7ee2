package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/nomenclature"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <formula>",
		Short:   "List reference compounds for a molecular formula",
		Example: "  organic-sim lookup C2H6O\n  organic-sim lookup C₂H₄O₂ --lang en",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			entries, err := nomenclature.Find(cliCtx.Catalog, args[0])
			if err != nil {
				return err
			}
			cliCtx.Logger.Debug("catalog lookup", logging.String("formula", args[0]), logging.Int("matches", len(entries)))
			return PrintResult(cmd, lookupTable{entries: entries, lang: cliCtx.Language})
		},
	}
}

// lookupTable lists catalog entries, with the display name in the session
// language first.
type lookupTable struct {
	entries []nomenclature.Entry
	lang    molecule.Language
}

func (t lookupTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.entries)
}

func (t lookupTable) MarshalYAML() (interface{}, error) {
	return t.entries, nil
}

func (t lookupTable) TableHeaders() []string {
	return []string{"FORMULA", "NAME", "STRUCTURE", "TAGS"}
}

func (t lookupTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.entries))
	for _, e := range t.entries {
		rows = append(rows, []string{
			e.Formula,
			e.DisplayName(t.lang),
			e.StructuralFormula,
			strings.Join(e.Tags, ","),
		})
	}
	return rows
}
