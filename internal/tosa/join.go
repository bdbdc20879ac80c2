package tosa

import (
	"fmt"
	"sort"
	"strings"
)

// JoinErrorKind distinguishes the two ways the join can fail.
type JoinErrorKind string

const (
	// MissingOperator means the grammar declares an instruction the
	// specification has no operator for.
	MissingOperator JoinErrorKind = "missing operator"
	// MissingOperand means an instruction's operand has no category
	// entry under the matching operator.
	MissingOperand JoinErrorKind = "missing operand"
)

// JoinError reports a broken linkage between the grammar and the
// specification. It carries the searched context so that schema drift
// (a renamed operand, a new instruction, a typo) can be triaged from
// the error alone.
type JoinError struct {
	Kind    JoinErrorKind
	Op      string   // raw grammar instruction name
	Operand string   // set when Kind is MissingOperand
	Context []string // keys that were searched, sorted
}

func (e *JoinError) Error() string {
	switch e.Kind {
	case MissingOperand:
		return fmt.Sprintf(
			"missing operand %q of instruction %q in specification; operator has: %s",
			e.Operand, e.Op, strings.Join(e.Context, ", "),
		)
	default:
		return fmt.Sprintf(
			"missing operator %q in specification; searched: %s",
			e.Op, strings.Join(e.Context, ", "),
		)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BuildOperandInfo joins the grammar instruction list against the
// specification's category table. For every instruction the operator
// is looked up by upper-cased name, and every operand's category is
// looked up the same way within that operator. Row order follows
// grammar order. Output keys are normalized with NormalizeOpName.
//
// The join is total or it fails: a missing operator or operand means
// the two schemas have drifted apart, and a partial result would
// silently mis-describe an operand's role downstream.
func BuildOperandInfo(cats CategoryTable, instructions []Instruction) (OperandInfo, error) {
	info := make(OperandInfo, len(instructions))
	for _, ins := range instructions {
		argCats, ok := cats[strings.ToUpper(ins.Opname)]
		if !ok {
			return nil, &JoinError{
				Kind:    MissingOperator,
				Op:      ins.Opname,
				Context: sortedKeys(cats),
			}
		}

		rows := make([]Operand, 0, len(ins.Operands))
		for _, operand := range ins.Operands {
			cat, ok := argCats[strings.ToUpper(operand.Name)]
			if !ok {
				return nil, &JoinError{
					Kind:    MissingOperand,
					Op:      ins.Opname,
					Operand: operand.Name,
					Context: sortedKeys(argCats),
				}
			}
			rows = append(rows, Operand{Name: operand.Name, Category: cat})
		}
		info[NormalizeOpName(ins.Opname)] = rows
	}
	return info, nil
}
