// Package python turns Python source into a [flowchart.Flowchart].
//
// Source is parsed with tree-sitter and the concrete syntax tree is walked
// once. Every meaningful statement becomes a node and is linked to its
// structural owner:
//
//   - module, function and class bodies fan out from their owner
//   - an if statement emits the test, an "If body" container reached by a
//     true edge and, when there is an alternative, an "Else body" container
//     reached by a false edge; elif chains nest under the else container
//   - for and while loops link the loop header straight to the body
//   - try emits a guard, a "Try body" container and one node per handler
//     reached by exception edges
//   - return, assignment, expression and import statements are leaves
//   - everything else becomes a single node labelled with its class name
//
// Labels follow the formatting of Python's ast module: string literals longer
// than 20 characters are cut to 17 plus "...", and argument or element lists
// longer than three are cut to two plus "...". See [ExprString].
//
// Each call to [Parse] uses a fresh tree-sitter parser and a fresh
// [flowchart.Builder], so Parse is safe to call from multiple goroutines.
package python
