package layout

import "github.com/matzehuels/codeflow/pkg/flowchart"

// forwardChildren returns, per node index, the indices of the nodes reached
// by forward edges. An edge is forward when its target appears later in the
// node list than its source; self loops, back edges and dangling edges are
// dropped.
func forwardChildren(fc *flowchart.Flowchart) [][]int {
	idx := fc.Index()
	children := make([][]int, len(fc.Nodes))
	for _, e := range fc.Edges {
		from, ok := idx[e.From]
		if !ok {
			continue
		}
		to, ok := idx[e.To]
		if !ok || to <= from {
			continue
		}
		children[from] = append(children[from], to)
	}
	return children
}

// assignRows assigns each node index to a row using Kahn's algorithm over
// forward edges. Sources are at row 0 and every child sits at least one row
// below each of its parents.
func assignRows(children [][]int) []int {
	n := len(children)
	inDegree := make([]int, n)
	for _, cs := range children {
		for _, c := range cs {
			inDegree[c]++
		}
	}

	rows := make([]int, n)
	queue := make([]int, 0, n)
	for i, d := range inDegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range children[curr] {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return rows
}
