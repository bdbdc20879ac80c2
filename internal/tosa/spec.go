package tosa

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// specNode is a generic element-tree node, decoded recursively so that
// enums and operators can be found at any depth in the specification
// document.
type specNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []specNode `xml:",any"`
}

func parseSpecTree(specXML []byte) (*specNode, error) {
	var root specNode
	if err := xml.Unmarshal(specXML, &root); err != nil {
		return nil, fmt.Errorf("failed to parse specification XML: %w", err)
	}
	return &root, nil
}

// attr returns the value of the named attribute and whether it was
// present at all. A present-but-blank attribute is distinct from a
// missing one.
func (n *specNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// childText returns the trimmed character data of the first child
// element with the given local name.
func (n *specNode) childText(name string) string {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return strings.TrimSpace(n.Nodes[i].Text)
		}
	}
	return ""
}

// walk calls fn for every element named name, at any depth.
func (n *specNode) walk(name string, fn func(*specNode) error) error {
	if n.XMLName.Local == name {
		if err := fn(n); err != nil {
			return err
		}
	}
	for i := range n.Nodes {
		if err := n.Nodes[i].walk(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// ParseEnums extracts every <enum> block from the specification
// document. The name attribute is required on the enum and on each of
// its <enumval> children; a missing attribute is a schema error. A
// blank name skips the enum or value, matching the upstream generator.
// Value order follows document order. Duplicate enum names are not
// expected in the schema; if one appears the last occurrence wins.
func ParseEnums(specXML []byte) (EnumTable, error) {
	root, err := parseSpecTree(specXML)
	if err != nil {
		return nil, err
	}

	enums := make(EnumTable)
	err = root.walk("enum", func(enum *specNode) error {
		enumName, ok := enum.attr("name")
		if !ok {
			return fmt.Errorf("<enum> element is missing its %q attribute", "name")
		}
		if enumName == "" {
			return nil
		}
		var values []string
		for i := range enum.Nodes {
			ev := &enum.Nodes[i]
			if ev.XMLName.Local != "enumval" {
				continue
			}
			valueName, ok := ev.attr("name")
			if !ok {
				return fmt.Errorf("<enumval> of enum %q is missing its %q attribute", enumName, "name")
			}
			if valueName == "" {
				continue
			}
			values = append(values, valueName)
		}
		enums[enumName] = values
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enums, nil
}

// ParseCategories extracts the operator argument categories from the
// specification document as {OP_UPPER: {ARG_UPPER: category}}.
//
// The specification calls these slots "arguments"; the grammar and the
// rest of this package call them "operands". Operator blocks without a
// <name> are not real operators and are skipped. An argument category
// outside the supported set is a hard error: silently coercing it
// would mis-describe the operand's role everywhere downstream.
func ParseCategories(specXML []byte) (CategoryTable, error) {
	root, err := parseSpecTree(specXML)
	if err != nil {
		return nil, err
	}

	cats := make(CategoryTable)
	err = root.walk("operator", func(op *specNode) error {
		opName := op.childText("name")
		if opName == "" {
			return nil
		}
		argCats := make(map[string]Category)
		for i := range op.Nodes {
			args := &op.Nodes[i]
			if args.XMLName.Local != "arguments" {
				continue
			}
			for j := range args.Nodes {
				arg := &args.Nodes[j]
				if arg.XMLName.Local != "argument" {
					continue
				}
				argName, _ := arg.attr("name")
				argName = strings.TrimSpace(argName)
				rawCat, _ := arg.attr("category")
				cat := Category(strings.ToLower(strings.TrimSpace(rawCat)))
				if !SupportedCategory(cat) {
					return fmt.Errorf(
						"invalid category %q on operator %q argument %q; expected one of: %s",
						cat, opName, argName, supportedCategoryNames(),
					)
				}
				if argName != "" {
					argCats[strings.ToUpper(argName)] = cat
				}
			}
		}
		cats[strings.ToUpper(opName)] = argCats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cats, nil
}
