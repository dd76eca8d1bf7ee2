package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// Codes are "<MODULE>_<NNN>"; the prefix identifies the owning module.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Module returns the module prefix of the code ("RXN" for "RXN_002").
func (c ErrorCode) Module() string {
	s := string(c)
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}

// Module prefixes.
const (
	ModuleCommon   = "COMMON"
	ModuleAtom     = "ATM"
	ModuleReaction = "RXN"
	ModuleHistory  = "HIS"
	ModuleCatalog  = "CAT"
	ModuleScene    = "SCN"
	ModuleConfig   = "CFG"
)

// Common Error Codes
const (
	ErrCodeInternal      ErrorCode = "COMMON_001"
	ErrCodeBadRequest    ErrorCode = "COMMON_002"
	ErrCodeNotFound      ErrorCode = "COMMON_005"
	ErrCodeValidation    ErrorCode = "COMMON_010"
	ErrCodeSerialization ErrorCode = "COMMON_011"
)

// Aliases
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Atom store error codes
const (
	ErrCodeAtomNotFound     ErrorCode = "ATM_001"
	ErrCodeUnknownElement   ErrorCode = "ATM_002"
	ErrCodeCellOccupied     ErrorCode = "ATM_003"
	ErrCodeUnknownGroup     ErrorCode = "ATM_004"
	ErrCodeInvalidBondOrder ErrorCode = "ATM_005"
	ErrCodeUnknownDirection ErrorCode = "ATM_006"
)

// Reaction error codes.  Messages carried by these codes are user-facing.
const (
	ErrCodeDehydrationSelection ErrorCode = "RXN_001"
	ErrCodeDehydrationDistance  ErrorCode = "RXN_002"
	ErrCodeUnknownTool          ErrorCode = "RXN_003"
	ErrCodeUnknownReagent       ErrorCode = "RXN_004"
	ErrCodeBondNotEligible      ErrorCode = "RXN_005"
	ErrCodeNotOxidizable        ErrorCode = "RXN_006"
	ErrCodeToolMismatch         ErrorCode = "RXN_007"
)

// History error codes
const (
	ErrCodeNothingToUndo   ErrorCode = "HIS_001"
	ErrCodeNothingToRedo   ErrorCode = "HIS_002"
	ErrCodeSnapshotCorrupt ErrorCode = "HIS_003"
)

// Catalog error codes
const (
	ErrCodeCatalogLoad          ErrorCode = "CAT_001"
	ErrCodeCatalogInvalid       ErrorCode = "CAT_002"
	ErrCodeCatalogEntryNotFound ErrorCode = "CAT_003"
	ErrCodeCatalogWatch         ErrorCode = "CAT_004"
)

// Scene and replay-script error codes
const (
	ErrCodeSceneRead   ErrorCode = "SCN_001"
	ErrCodeSceneDecode ErrorCode = "SCN_002"
	ErrCodeScriptStep  ErrorCode = "SCN_003"
	ErrCodeSceneFormat ErrorCode = "SCN_004"
	ErrCodeSceneWatch  ErrorCode = "SCN_005"
)

// Configuration error codes
const (
	ErrCodeConfigLoad    ErrorCode = "CFG_001"
	ErrCodeConfigInvalid ErrorCode = "CFG_002"
)
