package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/matzehuels/codeflow/pkg/flowchart"
)

// statementClasses maps tree-sitter statement kinds to the class name used
// as the label of generic nodes.
var statementClasses = map[string]string{
	"pass_statement":       "Pass",
	"break_statement":      "Break",
	"continue_statement":   "Continue",
	"raise_statement":      "Raise",
	"global_statement":     "Global",
	"nonlocal_statement":   "Nonlocal",
	"delete_statement":     "Delete",
	"assert_statement":     "Assert",
	"with_statement":       "With",
	"match_statement":      "Match",
	"type_alias_statement": "TypeAlias",
}

// translator walks a syntax tree in document order and feeds a builder.
type translator struct {
	src []byte
	b   *flowchart.Builder
}

func (t *translator) text(n *sitter.Node) string { return n.Content(t.src) }

func (t *translator) module(root *sitter.Node) {
	id := t.b.Allocate()
	t.b.AddNode(id, flowchart.TypeModule, "Module")
	t.body(root, id)
}

// body links every statement directly under block to owner.
func (t *translator) body(block *sitter.Node, owner int) {
	if block == nil {
		return
	}
	for _, s := range namedChildren(block) {
		t.statement(s, owner)
	}
}

// statement allocates an id for n, links it from parent and emits it. The
// edge is recorded before the node so edge order matches discovery order.
func (t *translator) statement(n *sitter.Node, parent int) {
	id := t.b.Allocate()
	t.b.Link(parent, id, flowchart.EdgeNormal, "")
	t.emit(n, id)
}

func (t *translator) emit(n *sitter.Node, id int) {
	switch n.Type() {
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			t.emit(def, id)
			return
		}
		t.generic(id, "DecoratedDefinition")
	case "function_definition":
		if isAsync(n) {
			t.generic(id, "AsyncFunctionDef")
			return
		}
		t.function(n, id)
	case "class_definition":
		t.class(n, id)
	case "if_statement":
		t.ifChain(id, n.ChildByFieldName("condition"), n.ChildByFieldName("consequence"), alternatives(n))
	case "for_statement":
		if isAsync(n) {
			t.generic(id, "AsyncFor")
			return
		}
		label := "For: " + t.expr(n.ChildByFieldName("left")) + " in " + t.expr(n.ChildByFieldName("right"))
		t.b.AddNode(id, flowchart.TypeFor, label)
		t.body(n.ChildByFieldName("body"), id)
	case "while_statement":
		t.b.AddNode(id, flowchart.TypeWhile, "While: "+t.expr(n.ChildByFieldName("condition")))
		t.body(n.ChildByFieldName("body"), id)
	case "try_statement":
		if hasChild(n, "except_group_clause") {
			t.generic(id, "TryStar")
			return
		}
		t.try(n, id)
	case "return_statement":
		label := "Return: None"
		if kids := namedChildren(n); len(kids) > 0 {
			label = "Return: " + t.expr(kids[0])
		}
		t.b.AddNode(id, flowchart.TypeReturn, label)
	case "expression_statement":
		t.expressionStatement(n, id)
	case "import_statement":
		t.b.AddNode(id, flowchart.TypeImport, "Import: "+strings.Join(t.importNames(n, false), ", "))
	case "import_from_statement", "future_import_statement":
		t.importFrom(n, id)
	case "with_statement":
		if isAsync(n) {
			t.generic(id, "AsyncWith")
			return
		}
		t.generic(id, "With")
	default:
		t.generic(id, className(n.Type()))
	}
}

// generic emits a leaf whose type is the lowercase class name.
func (t *translator) generic(id int, class string) {
	t.b.AddNode(id, flowchart.NodeType(strings.ToLower(class)), class)
}

func (t *translator) function(n *sitter.Node, id int) {
	name := t.text(n.ChildByFieldName("name"))
	params := t.parameters(n.ChildByFieldName("parameters"))
	t.b.AddNode(id, flowchart.TypeFunction, "Function: "+name+"("+strings.Join(params, ", ")+")")
	t.body(n.ChildByFieldName("body"), id)
}

// parameters returns the names of the ordinary positional parameters.
// Positional-only, keyword-only, *args and **kwargs are left out.
func (t *translator) parameters(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	var names []string
	for _, p := range namedChildren(n) {
		kind := p.Type()
		if kind == "typed_parameter" {
			if inner := p.NamedChild(0); inner != nil {
				if inner.Type() != "identifier" {
					kind = inner.Type()
				} else {
					p = inner
					kind = "identifier"
				}
			}
		}
		switch kind {
		case "identifier":
			names = append(names, t.text(p))
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, t.text(name))
			}
		case "positional_separator":
			names = names[:0]
		case "keyword_separator", "list_splat_pattern":
			return names
		}
	}
	return names
}

func (t *translator) class(n *sitter.Node, id int) {
	label := "Class: " + t.text(n.ChildByFieldName("name"))
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		var bases []string
		for _, c := range namedChildren(supers) {
			switch c.Type() {
			case "keyword_argument", "dictionary_splat":
				continue
			}
			bases = append(bases, t.dotted(c))
		}
		if len(bases) > 0 {
			label += "(" + strings.Join(bases, ", ") + ")"
		}
	}
	t.b.AddNode(id, flowchart.TypeClass, label)
	t.body(n.ChildByFieldName("body"), id)
}

// dotted renders names and attribute chains as written and anything else as
// an expression.
func (t *translator) dotted(n *sitter.Node) string {
	switch n.Type() {
	case "identifier":
		return t.text(n)
	case "attribute":
		return t.dotted(n.ChildByFieldName("object")) + "." + t.text(n.ChildByFieldName("attribute"))
	}
	return t.expr(n)
}

// ifChain emits an if test with its containers. An elif becomes a nested if
// under the else container carrying the remaining alternatives.
func (t *translator) ifChain(id int, cond, consequence *sitter.Node, alts []*sitter.Node) {
	t.b.AddNode(id, flowchart.TypeIf, "If: "+t.expr(cond))

	bodyID := t.b.Allocate()
	t.b.AddNode(bodyID, flowchart.TypeIfBody, "If body")
	t.b.Link(id, bodyID, flowchart.EdgeTrue, "")
	t.body(consequence, bodyID)

	if len(alts) == 0 {
		return
	}
	elseID := t.b.Allocate()
	t.b.AddNode(elseID, flowchart.TypeElseBody, "Else body")
	t.b.Link(id, elseID, flowchart.EdgeFalse, "")

	switch first := alts[0]; first.Type() {
	case "elif_clause":
		nested := t.b.Allocate()
		t.b.Link(elseID, nested, flowchart.EdgeNormal, "")
		t.ifChain(nested, first.ChildByFieldName("condition"), first.ChildByFieldName("consequence"), alts[1:])
	case "else_clause":
		t.body(first.ChildByFieldName("body"), elseID)
	}
}

func alternatives(n *sitter.Node) []*sitter.Node {
	var alts []*sitter.Node
	for _, c := range namedChildren(n) {
		if c.Type() == "elif_clause" || c.Type() == "else_clause" {
			alts = append(alts, c)
		}
	}
	return alts
}

func (t *translator) try(n *sitter.Node, id int) {
	t.b.AddNode(id, flowchart.TypeTry, "Try")

	bodyID := t.b.Allocate()
	t.b.AddNode(bodyID, flowchart.TypeTryBody, "Try body")
	t.b.Link(id, bodyID, flowchart.EdgeNormal, "")
	t.body(n.ChildByFieldName("body"), bodyID)

	for _, c := range namedChildren(n) {
		if c.Type() != "except_clause" {
			continue
		}
		exID := t.b.Allocate()
		label, block := t.handler(c)
		t.b.AddNode(exID, flowchart.TypeExcept, label)
		t.b.Link(id, exID, flowchart.EdgeException, "")
		t.body(block, exID)
	}
}

// handler returns the label and block of an except clause.
func (t *translator) handler(n *sitter.Node) (string, *sitter.Node) {
	var (
		block *sitter.Node
		parts []*sitter.Node
	)
	for _, c := range namedChildren(n) {
		if c.Type() == "block" {
			block = c
			continue
		}
		parts = append(parts, c)
	}
	if len(parts) == 0 {
		return "Except", block
	}

	typ, alias := parts[0], ""
	if typ.Type() == "as_pattern" {
		if a := typ.ChildByFieldName("alias"); a != nil {
			alias = t.text(a)
		}
		typ = typ.NamedChild(0)
	} else if len(parts) > 1 {
		alias = t.text(parts[1])
	}

	label := "Except: " + t.expr(typ)
	if alias != "" {
		label += " as " + alias
	}
	return label, block
}

func (t *translator) expressionStatement(n *sitter.Node, id int) {
	kids := namedChildren(n)
	switch {
	case len(kids) == 0:
		t.generic(id, "Expr")
	case len(kids) > 1:
		t.b.AddNode(id, flowchart.TypeExpr, "Tuple")
	case kids[0].Type() == "assignment":
		t.assignment(kids[0], id)
	case kids[0].Type() == "augmented_assignment":
		t.generic(id, "AugAssign")
	default:
		t.b.AddNode(id, flowchart.TypeExpr, t.expr(kids[0]))
	}
}

// assignment labels a = b = value as "a, b = value". Annotated assignments
// become generic AnnAssign nodes.
func (t *translator) assignment(a *sitter.Node, id int) {
	if a.ChildByFieldName("type") != nil {
		t.generic(id, "AnnAssign")
		return
	}
	var targets []string
	for {
		targets = append(targets, t.expr(a.ChildByFieldName("left")))
		right := a.ChildByFieldName("right")
		if right != nil && right.Type() == "assignment" && right.ChildByFieldName("type") == nil {
			a = right
			continue
		}
		t.b.AddNode(id, flowchart.TypeAssign, strings.Join(targets, ", ")+" = "+t.expr(right))
		return
	}
}

// importNames lists the imported names of an import statement. With
// afterKeyword set only names following the "import" token are collected.
func (t *translator) importNames(n *sitter.Node, afterKeyword bool) []string {
	var names []string
	seen := !afterKeyword
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !seen {
			seen = c.Type() == "import"
			continue
		}
		switch c.Type() {
		case "dotted_name", "identifier":
			names = append(names, t.dottedName(c))
		case "aliased_import":
			names = append(names, t.dottedName(c.ChildByFieldName("name"))+" as "+t.text(c.ChildByFieldName("alias")))
		case "wildcard_import":
			names = append(names, "*")
		}
	}
	return names
}

func (t *translator) importFrom(n *sitter.Node, id int) {
	module := "__future__"
	if n.Type() == "import_from_statement" {
		module = ""
		if m := n.ChildByFieldName("module_name"); m != nil {
			switch m.Type() {
			case "dotted_name":
				module = t.dottedName(m)
			case "relative_import":
				for _, c := range namedChildren(m) {
					if c.Type() == "dotted_name" {
						module = t.dottedName(c)
					}
				}
			}
		}
	}
	names := t.importNames(n, true)
	t.b.AddNode(id, flowchart.TypeImportFrom, "From "+module+" import "+strings.Join(names, ", "))
}

func (t *translator) dottedName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() != "dotted_name" {
		return t.text(n)
	}
	var parts []string
	for _, c := range namedChildren(n) {
		parts = append(parts, t.text(c))
	}
	return strings.Join(parts, ".")
}

func (t *translator) expr(n *sitter.Node) string { return ExprString(n, t.src) }

// namedChildren returns the named children of n without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "comment", "line_continuation":
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasChild(n *sitter.Node, kind string) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == kind {
			return true
		}
	}
	return false
}

// hasToken reports whether n has an anonymous child spelled tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

func isAsync(n *sitter.Node) bool {
	return n.ChildCount() > 0 && n.Child(0).Type() == "async"
}

// className turns a tree-sitter kind such as "exec_statement" into "Exec".
func className(kind string) string {
	if c, ok := statementClasses[kind]; ok {
		return c
	}
	return camel(strings.TrimSuffix(kind, "_statement"))
}

func camel(kind string) string {
	var sb strings.Builder
	for _, part := range strings.Split(kind, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
