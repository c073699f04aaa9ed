package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	maxListItems = 3
	keepListItem = 2
	maxDictPairs = 3
)

var binaryOps = map[string]string{
	"+":  "+",
	"-":  "-",
	"*":  "*",
	"/":  "/",
	"//": "//",
	"%":  "%",
	"**": "**",
	"@":  "MatMult",
	"<<": "LShift",
	">>": "RShift",
	"|":  "BitOr",
	"^":  "BitXor",
	"&":  "BitAnd",
}

// exprClasses maps expression kinds that are shown by class name only.
var exprClasses = map[string]string{
	"tuple":                    "Tuple",
	"expression_list":          "Tuple",
	"pattern_list":             "Tuple",
	"tuple_pattern":            "Tuple",
	"not_operator":             "UnaryOp",
	"unary_operator":           "UnaryOp",
	"list_splat":               "Starred",
	"list_splat_pattern":       "Starred",
	"subscript":                "Subscript",
	"slice":                    "Slice",
	"lambda":                   "Lambda",
	"conditional_expression":   "IfExp",
	"list_comprehension":       "ListComp",
	"dictionary_comprehension": "DictComp",
	"set_comprehension":        "SetComp",
	"generator_expression":     "GeneratorExp",
	"set":                      "Set",
	"await":                    "Await",
	"named_expression":         "NamedExpr",
}

// ExprString renders an expression node as a short label. Names, literals,
// calls, attributes, arithmetic, comparisons, lists and dictionaries are
// spelled out. Every other expression is shown by its class name, for
// example "Subscript" or "Lambda". It never fails; a nil node renders as
// "None".
func ExprString(n *sitter.Node, src []byte) string {
	if n == nil {
		return "None"
	}
	p := printer{src: src}
	return p.str(n)
}

type printer struct {
	src []byte
}

func (p printer) text(n *sitter.Node) string { return n.Content(p.src) }

func (p printer) str(n *sitter.Node) string {
	switch kind := n.Type(); kind {
	case "identifier":
		return p.text(n)
	case "string":
		return p.stringLiteral(n)
	case "concatenated_string":
		return p.concatenated(n)
	case "integer":
		return intLiteral(p.text(n))
	case "float":
		return floatLiteral(p.text(n))
	case "true":
		return "True"
	case "false":
		return "False"
	case "none":
		return "None"
	case "ellipsis":
		return "Ellipsis"
	case "call":
		return p.call(n)
	case "attribute":
		return p.str(n.ChildByFieldName("object")) + "." + p.text(n.ChildByFieldName("attribute"))
	case "binary_operator":
		return p.binary(n)
	case "comparison_operator":
		return p.comparison(n)
	case "boolean_operator":
		op := n.ChildByFieldName("operator")
		return p.str(n.ChildByFieldName("left")) + " " + op.Type() + " " + p.str(n.ChildByFieldName("right"))
	case "parenthesized_expression", "type":
		if kids := namedChildren(n); len(kids) > 0 {
			return p.str(kids[0])
		}
		return "Tuple"
	case "list", "list_pattern":
		return p.list(n)
	case "dictionary":
		return p.dict(n)
	case "yield":
		if hasToken(n, "from") {
			return "YieldFrom"
		}
		return "Yield"
	default:
		if c, ok := exprClasses[kind]; ok {
			return c
		}
		return camel(kind)
	}
}

// call renders positional arguments first and keyword arguments after. A
// **mapping argument has no keyword name and shows as "None=mapping".
func (p printer) call(n *sitter.Node) string {
	fn := p.str(n.ChildByFieldName("function"))
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return fn + "()"
	}
	if args.Type() == "generator_expression" {
		return fn + "(GeneratorExp)"
	}

	var pos, kw []string
	for _, a := range namedChildren(args) {
		switch a.Type() {
		case "keyword_argument":
			kw = append(kw, p.text(a.ChildByFieldName("name"))+"="+p.str(a.ChildByFieldName("value")))
		case "dictionary_splat":
			kw = append(kw, "None="+p.str(a.NamedChild(0)))
		default:
			pos = append(pos, p.str(a))
		}
	}
	return fn + "(" + truncateItems(append(pos, kw...)) + ")"
}

func (p printer) binary(n *sitter.Node) string {
	op := n.ChildByFieldName("operator").Type()
	if sym, ok := binaryOps[op]; ok {
		op = sym
	}
	return p.str(n.ChildByFieldName("left")) + " " + op + " " + p.str(n.ChildByFieldName("right"))
}

// comparison joins operands and operators in source order. The grammar
// splits "not in" and "is not" into two tokens which are merged here.
func (p printer) comparison(n *sitter.Node) string {
	var parts []string
	pendingOp := ""
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.IsNamed() {
			if c.Type() == "comment" {
				continue
			}
			if pendingOp != "" {
				parts = append(parts, pendingOp)
				pendingOp = ""
			}
			parts = append(parts, p.str(c))
			continue
		}
		op := c.Type()
		switch {
		case op == "<>":
			op = "!="
		case pendingOp == "not" && op == "in":
			op = "not in"
		case pendingOp == "is" && op == "not":
			op = "is not"
		}
		pendingOp = op
	}
	return strings.Join(parts, " ")
}

func (p printer) list(n *sitter.Node) string {
	var items []string
	for _, c := range namedChildren(n) {
		items = append(items, p.str(c))
	}
	return "[" + truncateItems(items) + "]"
}

func (p printer) dict(n *sitter.Node) string {
	entries := namedChildren(n)
	if len(entries) == 0 {
		return "{}"
	}
	var items []string
	for i, e := range entries {
		if i == maxDictPairs {
			break
		}
		switch e.Type() {
		case "pair":
			items = append(items, p.str(e.ChildByFieldName("key"))+": "+p.str(e.ChildByFieldName("value")))
		case "dictionary_splat":
			items = append(items, "**"+p.str(e.NamedChild(0)))
		default:
			items = append(items, p.str(e))
		}
	}
	if len(entries) > maxDictPairs {
		return "{" + strings.Join(items, ", ") + ", ...}"
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// truncateItems joins items, keeping only two and "..." when there are more
// than three.
func truncateItems(items []string) string {
	if len(items) > maxListItems {
		return strings.Join(items[:keepListItem], ", ") + ", ..."
	}
	return strings.Join(items, ", ")
}
