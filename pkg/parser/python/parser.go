package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
)

// python2Only lists statements tree-sitter accepts but Python 3 rejects.
var python2Only = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
	"<>":              true,
}

// Parse parses src and returns its flowchart. The first node is always the
// module node with id 0. Source that does not parse is reported with
// [cferrors.ErrCodeSyntax] and the 1-based line and column of the first
// problem.
func Parse(ctx context.Context, src []byte) (*flowchart.Flowchart, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cferrors.Wrap(cferrors.ErrCodeInternal, err, "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, cferrors.New(cferrors.ErrCodeInternal, "tree-sitter returned no root node")
	}
	bad := firstError(root)
	if bad == nil && root.HasError() {
		bad = root
	}
	if bad != nil {
		p := bad.StartPoint()
		return nil, cferrors.New(cferrors.ErrCodeSyntax,
			"syntax error in Python code at line %d:%d: %s", p.Row+1, p.Column+1, describe(bad, src))
	}

	t := &translator{src: src, b: flowchart.NewBuilder()}
	t.module(root)
	return t.b.Flowchart(), nil
}

// firstError returns the first ERROR, MISSING or Python 2 only node in
// document order, or nil.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" || python2Only[n.Type()] {
		return n
	}
	// except E, name:
	if n.Type() == "except_clause" && hasToken(n, ",") {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func describe(n *sitter.Node, src []byte) string {
	switch {
	case n.IsMissing():
		return fmt.Sprintf("missing %q", n.Type())
	case python2Only[n.Type()]:
		return "Python 2 statement is not supported"
	}
	text := n.Content(src)
	if r := []rune(text); len(r) > 20 {
		text = string(r[:17]) + "..."
	}
	if text == "" {
		return "invalid syntax"
	}
	return fmt.Sprintf("invalid syntax near %q", text)
}
