package python

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
)

func mustParse(t *testing.T, src string) *flowchart.Flowchart {
	t.Helper()
	fc, err := Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return fc
}

func labels(fc *flowchart.Flowchart) []string {
	out := make([]string, len(fc.Nodes))
	for i, n := range fc.Nodes {
		out[i] = n.Label
	}
	return out
}

type edge struct {
	from, to int
	kind     flowchart.EdgeKind
}

func edges(fc *flowchart.Flowchart) []edge {
	out := make([]edge, len(fc.Edges))
	for i, e := range fc.Edges {
		out[i] = edge{e.From, e.To, e.Kind}
	}
	return out
}

func TestParseIfElseFunction(t *testing.T) {
	src := `def check(x):
    if x > 0:
        return "positive"
    else:
        return "non-positive"
`
	fc := mustParse(t, src)

	wantLabels := []string{
		"Module",
		"Function: check(x)",
		"If: x > 0",
		"If body",
		`Return: "positive"`,
		"Else body",
		`Return: "non-positive"`,
	}
	if diff := cmp.Diff(wantLabels, labels(fc)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	wantEdges := []edge{
		{0, 1, flowchart.EdgeNormal},
		{1, 2, flowchart.EdgeNormal},
		{2, 3, flowchart.EdgeTrue},
		{3, 4, flowchart.EdgeNormal},
		{2, 5, flowchart.EdgeFalse},
		{5, 6, flowchart.EdgeNormal},
	}
	if diff := cmp.Diff(wantEdges, edges(fc), cmp.AllowUnexported(edge{})); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	wantTypes := []flowchart.NodeType{
		flowchart.TypeModule, flowchart.TypeFunction, flowchart.TypeIf, flowchart.TypeIfBody,
		flowchart.TypeReturn, flowchart.TypeElseBody, flowchart.TypeReturn,
	}
	for i, n := range fc.Nodes {
		if n.Type != wantTypes[i] {
			t.Errorf("node %d type = %q, want %q", n.ID, n.Type, wantTypes[i])
		}
	}
	if err := fc.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if fc.Placed() {
		t.Error("parser output should carry no positions")
	}
}

func TestParseElifNestsUnderElse(t *testing.T) {
	src := `if a:
    x = 1
elif b:
    x = 2
else:
    x = 3
`
	fc := mustParse(t, src)
	wantLabels := []string{
		"Module", "If: a", "If body", "x = 1", "Else body",
		"If: b", "If body", "x = 2", "Else body", "x = 3",
	}
	if diff := cmp.Diff(wantLabels, labels(fc)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	wantEdges := []edge{
		{0, 1, flowchart.EdgeNormal},
		{1, 2, flowchart.EdgeTrue},
		{2, 3, flowchart.EdgeNormal},
		{1, 4, flowchart.EdgeFalse},
		{4, 5, flowchart.EdgeNormal},
		{5, 6, flowchart.EdgeTrue},
		{6, 7, flowchart.EdgeNormal},
		{5, 8, flowchart.EdgeFalse},
		{8, 9, flowchart.EdgeNormal},
	}
	if diff := cmp.Diff(wantEdges, edges(fc), cmp.AllowUnexported(edge{})); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	fc := mustParse(t, "if ready:\n    go()\n")
	if diff := cmp.Diff([]string{"Module", "If: ready", "If body", "go()"}, labels(fc)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTry(t *testing.T) {
	src := `try:
    risky()
except ValueError as e:
    pass
except (KeyError, IndexError):
    pass
except:
    pass
finally:
    cleanup()
`
	fc := mustParse(t, src)
	wantLabels := []string{
		"Module", "Try", "Try body", "risky()",
		"Except: ValueError as e", "Pass",
		"Except: Tuple", "Pass",
		"Except", "Pass",
	}
	if diff := cmp.Diff(wantLabels, labels(fc)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	var exceptions int
	for _, e := range fc.Edges {
		if e.Kind == flowchart.EdgeException {
			exceptions++
			if e.From != 1 {
				t.Errorf("exception edge from %d, want from the try node", e.From)
			}
		}
	}
	if exceptions != 3 {
		t.Errorf("exception edges = %d, want 3", exceptions)
	}
}

func TestParseLoops(t *testing.T) {
	src := `for i in range(3):
    total += i
while total:
    total -= 1
`
	fc := mustParse(t, src)
	want := []string{"Module", "For: i in range(3)", "AugAssign", "While: total", "AugAssign"}
	if diff := cmp.Diff(want, labels(fc)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if fc.Nodes[2].Type != "augassign" {
		t.Errorf("generic node type = %q, want augassign", fc.Nodes[2].Type)
	}
	wantEdges := []edge{
		{0, 1, flowchart.EdgeNormal},
		{1, 2, flowchart.EdgeNormal},
		{0, 3, flowchart.EdgeNormal},
		{3, 4, flowchart.EdgeNormal},
	}
	if diff := cmp.Diff(wantEdges, edges(fc), cmp.AllowUnexported(edge{})); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatementLabels(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"import", "import os, sys as s\n", []string{"Module", "Import: os, sys as s"}},
		{"dotted import", "import os.path\n", []string{"Module", "Import: os.path"}},
		{"from import", "from a.b import c as d, e\n", []string{"Module", "From a.b import c as d, e"}},
		{"relative import", "from . import x\n", []string{"Module", "From  import x"}},
		{"wildcard", "from m import *\n", []string{"Module", "From m import *"}},
		{"future", "from __future__ import annotations\n", []string{"Module", "From __future__ import annotations"}},
		{"annotated", "x: int = 1\n", []string{"Module", "AnnAssign"}},
		{"chained assign", "a = b = 1\n", []string{"Module", "a, b = 1"}},
		{"tuple assign", "a, b = 1, 2\n", []string{"Module", "Tuple = Tuple"}},
		{"call", "print(\"hi\")\n", []string{"Module", `print("hi")`}},
		{"bare return", "def f():\n    return\n", []string{"Module", "Function: f()", "Return: None"}},
		{"tuple return", "def f():\n    return a, b\n", []string{"Module", "Function: f()", "Return: Tuple"}},
		{"params", "def f(a, b=1, *args, c, **kw):\n    pass\n", []string{"Module", "Function: f(a, b)", "Pass"}},
		{"typed params", "def f(a: int, b: str = \"\"):\n    pass\n", []string{"Module", "Function: f(a, b)", "Pass"}},
		{"separators", "def f(a, /, b, *, c):\n    pass\n", []string{"Module", "Function: f(b)", "Pass"}},
		{"async def", "async def f():\n    pass\n", []string{"Module", "AsyncFunctionDef"}},
		{"decorated", "@cache\ndef f():\n    pass\n", []string{"Module", "Function: f()", "Pass"}},
		{"class", "class A(Base, m.Mixin, metaclass=Meta):\n    pass\n", []string{"Module", "Class: A(Base, m.Mixin)", "Pass"}},
		{"plain class", "class A:\n    x = 1\n", []string{"Module", "Class: A", "x = 1"}},
		{"with", "with open(p) as fh:\n    fh.read()\n", []string{"Module", "With"}},
		{"generic", "pass\nbreak\nraise\nglobal g\ndel x\nassert x\n", []string{"Module", "Pass", "Break", "Raise", "Global", "Delete", "Assert"}},
		{"comments", "# heading\nx = 1  # trailing\n", []string{"Module", "x = 1"}},
		{"empty", "", []string{"Module"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := mustParse(t, tt.src)
			if diff := cmp.Diff(tt.want, labels(fc)); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseExpressionLabels(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{`"abcdefghijklmnopqrstuvwxyz"`, `"abcdefghijklmnopq..."`},
		{`"exactly twenty chars"`, `"exactly twenty chars"`},
		{`'single'`, `"single"`},
		{`"""doc"""`, `"doc"`},
		{`"a\tb"`, "\"a\tb\""},
		{`r"\n"`, `"\n"`},
		{`"a" "b"`, `"ab"`},
		{`b"hi"`, `b'hi'`},
		{`f"{a}"`, "JoinedStr"},
		{`f(1, 2, 3, 4)`, "f(1, 2, ...)"},
		{`f(1, 2, 3)`, "f(1, 2, 3)"},
		{`f(a, b=1)`, "f(a, b=1)"},
		{`f(b=1, *a)`, "f(Starred, b=1)"},
		{`f(**kw)`, "f(None=kw)"},
		{`f(x for x in y)`, "f(GeneratorExp)"},
		{`obj.method()`, "obj.method()"},
		{`[1, 2, 3, 4]`, "[1, 2, ...]"},
		{`[1, 2, 3]`, "[1, 2, 3]"},
		{`{}`, "{}"},
		{`{"a": 1}`, `{"a": 1}`},
		{`{1: 2, 3: 4, 5: 6, 7: 8}`, "{1: 2, 3: 4, 5: 6, ...}"},
		{`{**base, "k": v}`, `{**base, "k": v}`},
		{`0x1F`, "31"},
		{`1_000`, "1000"},
		{`1.50`, "1.5"},
		{`2.`, "2.0"},
		{`1e20`, "1e+20"},
		{`True`, "True"},
		{`None`, "None"},
		{`...`, "Ellipsis"},
		{`a.b.c`, "a.b.c"},
		{`a + b * c`, "a + b * c"},
		{`a // b`, "a // b"},
		{`a << b`, "a LShift b"},
		{`(a)`, "a"},
		{`a < b <= c`, "a < b <= c"},
		{`a not in b`, "a not in b"},
		{`a is not None`, "a is not None"},
		{`a and b`, "a and b"},
		{`not a`, "UnaryOp"},
		{`-a`, "UnaryOp"},
		{`a[0]`, "Subscript"},
		{`lambda: 0`, "Lambda"},
		{`a if b else c`, "IfExp"},
		{`[x for x in y]`, "ListComp"},
		{`{1, 2}`, "Set"},
		{`a, b`, "Tuple"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			fc := mustParse(t, "x = "+tt.expr+"\n")
			if got, want := fc.Nodes[1].Label, "x = "+tt.want; got != want {
				t.Errorf("label = %q, want %q", got, want)
			}
		})
	}
}

func TestParseStringTruncationCountsRunes(t *testing.T) {
	fc := mustParse(t, "x = \"äöüäöüäöüäöüäöüäöüäöü\"\n")
	want := `x = "äöüäöüäöüäöüäöüäö..."`
	if got := fc.Nodes[1].Label; got != want {
		t.Errorf("label = %q, want %q", got, want)
	}
}

func TestParseIDsArePreorder(t *testing.T) {
	src := `import os

class Shape:
    def area(self):
        if self.kind == "square":
            return self.side ** 2
        return 0

def main():
    for s in shapes:
        try:
            print(s.area())
        except ValueError:
            pass
`
	fc := mustParse(t, src)
	for i, n := range fc.Nodes {
		if n.ID != i {
			t.Fatalf("node %d has id %d, want document order ids", i, n.ID)
		}
	}
	for _, e := range fc.Edges {
		if e.From >= e.To {
			t.Errorf("edge %d -> %d points backwards", e.From, e.To)
		}
	}
	if err := fc.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if got, want := fc.EdgeCount(), fc.NodeCount()-1; got != want {
		t.Errorf("EdgeCount() = %d, want a tree with %d edges", got, want)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := "def f(a):\n    if a:\n        return 1\n    return 2\n"
	first := mustParse(t, src)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, mustParse(t, src)); diff != "" {
			t.Fatalf("parse %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"unclosed def", "def f(:\n    pass\n", "line 1"},
		{"second line", "x = 1\nif x\n    pass\n", "line 2"},
		{"python 2 print", "print \"hello\"\n", "line 1"},
		{"python 2 except", "try:\n    pass\nexcept E, e:\n    pass\n", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := Parse(context.Background(), []byte(tt.src))
			if err == nil {
				t.Fatalf("Parse() = %v, want syntax error", labels(fc))
			}
			if !cferrors.Is(err, cferrors.ErrCodeSyntax) {
				t.Errorf("code = %q, want %q", cferrors.GetCode(err), cferrors.ErrCodeSyntax)
			}
			msg := cferrors.UserMessage(err)
			if !strings.HasPrefix(msg, "syntax error in Python code") {
				t.Errorf("message = %q", msg)
			}
			if !strings.Contains(msg, tt.line) {
				t.Errorf("message = %q, want it to mention %s", msg, tt.line)
			}
		})
	}
}
