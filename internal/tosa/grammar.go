package tosa

import (
	"encoding/json"
	"fmt"
)

// Instruction is one entry of the grammar's "instructions" list: an
// opcode name plus its operands in binary-encoding order.
type Instruction struct {
	Opname   string           `json:"opname"`
	Operands []GrammarOperand `json:"operands"`
}

// GrammarOperand is an operand slot as declared by the grammar. Only
// the name matters here; the semantic role comes from the
// specification at join time.
type GrammarOperand struct {
	Name string `json:"name"`
}

type grammarDoc struct {
	Instructions []Instruction `json:"instructions"`
}

// ParseGrammar decodes the SPIR-V extended-instruction grammar and
// returns its instruction list in document order. The grammar is not
// validated against itself; all cross-checking happens at the join
// stage.
func ParseGrammar(grammarJSON []byte) ([]Instruction, error) {
	var doc grammarDoc
	if err := json.Unmarshal(grammarJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse grammar JSON: %w", err)
	}
	if doc.Instructions == nil {
		return nil, fmt.Errorf("grammar document has no %q key", "instructions")
	}
	return doc.Instructions, nil
}
