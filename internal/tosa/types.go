// Package tosa builds the TOSA operand-info artifact by joining the
// TOSA specification XML with the SPIR-V TOSA extended-instruction
// grammar. The two documents are maintained independently, so every
// linkage between them is checked and any gap is a hard error.
package tosa

import (
	"sort"
	"strings"
)

// Category classifies an operand's semantic role. The set is closed:
// anything outside it in the specification is a schema error.
type Category string

const (
	CategoryInput            Category = "input"
	CategoryOutput           Category = "output"
	CategoryAttribute        Category = "attribute"
	CategoryAttributeProfile Category = "attribute(pro-int,pro-fp)"
)

var supportedCategories = map[Category]struct{}{
	CategoryInput:            {},
	CategoryOutput:           {},
	CategoryAttribute:        {},
	CategoryAttributeProfile: {},
}

// SupportedCategory reports whether c is a member of the closed
// category set.
func SupportedCategory(c Category) bool {
	_, ok := supportedCategories[c]
	return ok
}

func supportedCategoryNames() string {
	names := make([]string, 0, len(supportedCategories))
	for c := range supportedCategories {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// EnumTable maps an enum name from the specification to its value
// names in document order.
type EnumTable map[string][]string

// CategoryTable maps an upper-cased operator name to a map from
// upper-cased argument name to category. Keys are upper-cased because
// the grammar and the specification disagree on casing.
type CategoryTable map[string]map[string]Category

// Operand is one row of the joined artifact: the operand name as
// spelled in the grammar, plus its category from the specification.
type Operand struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// OperandInfo is the final joined artifact, keyed by normalized
// instruction name. Rows preserve grammar (binary-encoding) order.
type OperandInfo map[string][]Operand

// NormalizeOpName converts a raw grammar instruction name to the key
// used by the artifact's consumers, which spell operator names without
// underscores and in lower case (e.g. MATMUL_ADD -> matmuladd).
func NormalizeOpName(raw string) string {
	return strings.ToLower(strings.ReplaceAll(raw, "_", ""))
}
