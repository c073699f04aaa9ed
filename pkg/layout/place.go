package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/codeflow/pkg/flowchart"
	"github.com/matzehuels/codeflow/pkg/render/diagram"
)

const (
	columnGap = 0.06 // horizontal gap between neighbouring shapes
	rowGap    = 0.04 // vertical gap added to two shape heights per row
)

// Spacing is the grid a chart is placed on.
type Spacing struct {
	Slot    float64 // minimum distance between centres in a row
	Step    float64 // distance between row centres
	MarginX float64 // distance from the canvas edge to the outermost centre
	MarginY float64
}

// SpacingFor derives the grid from a shape preset.
func SpacingFor(p diagram.Preset) Spacing {
	return Spacing{
		Slot:    p.Width + columnGap,
		Step:    2*p.Height + rowGap,
		MarginX: p.Width,
		MarginY: p.Height + rowGap,
	}
}

// Place returns a copy of fc with every node positioned. Charts that are
// already placed are returned as they are. The input is never modified.
func Place(fc *flowchart.Flowchart) *flowchart.Flowchart {
	if fc.Placed() {
		return fc
	}
	return PlaceWith(fc, SpacingFor(diagram.PresetFor(fc.IsComplex())))
}

// PlaceWith positions every node of a copy of fc on the given grid,
// replacing any existing positions.
func PlaceWith(fc *flowchart.Flowchart, sp Spacing) *flowchart.Flowchart {
	out := fc.Clone()
	if len(out.Nodes) == 0 {
		if out.Canvas.Width <= 0 || out.Canvas.Height <= 0 {
			out.Canvas = flowchart.UnitCanvas
		}
		return out
	}

	children := forwardChildren(out)
	rows := assignRows(children)
	parents := make([][]int, len(out.Nodes))
	for p, cs := range children {
		for _, c := range cs {
			parents[c] = append(parents[c], p)
		}
	}

	xs := sweepColumns(rows, parents, sp.Slot)

	minX, maxX := math.Inf(1), math.Inf(-1)
	depth := 0
	for i, x := range xs {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		depth = max(depth, rows[i])
	}

	// Centre narrow charts on the unit canvas and grow wide ones.
	width := math.Max(1, maxX-minX+2*sp.MarginX)
	shift := (width-(maxX-minX))/2 - minX
	height := math.Max(1, float64(depth)*sp.Step+2*sp.MarginY)
	top := height - sp.MarginY
	if height == 1 {
		// Short charts are centred vertically.
		top = (1 + float64(depth)*sp.Step) / 2
	}

	for i := range out.Nodes {
		out.Nodes[i].Pos = &flowchart.Point{
			X: xs[i] + shift,
			Y: top - float64(rows[i])*sp.Step,
		}
	}
	out.Canvas = flowchart.Canvas{Width: width, Height: height}
	return out
}

// sweepColumns returns an x offset per node. Rows are processed top down;
// each node wants the mean x of its parents, nodes are ordered by that wish
// and pushed right until they are slot apart, then the row is shifted back
// so its mean matches the mean wish.
func sweepColumns(rows []int, parents [][]int, slot float64) []float64 {
	byRow := map[int][]int{}
	depth := 0
	for i, r := range rows {
		byRow[r] = append(byRow[r], i)
		depth = max(depth, r)
	}

	xs := make([]float64, len(rows))
	for r := 0; r <= depth; r++ {
		members := byRow[r]
		if len(members) == 0 {
			continue
		}
		want := make(map[int]float64, len(members))
		for _, i := range members {
			if len(parents[i]) == 0 {
				want[i] = 0
				continue
			}
			var sum float64
			for _, p := range parents[i] {
				sum += xs[p]
			}
			want[i] = sum / float64(len(parents[i]))
		}

		slices.SortStableFunc(members, func(a, b int) int {
			switch {
			case want[a] < want[b]:
				return -1
			case want[a] > want[b]:
				return 1
			}
			return a - b
		})

		var sumWant, sumGot float64
		for k, i := range members {
			x := want[i]
			if k > 0 {
				x = math.Max(x, xs[members[k-1]]+slot)
			}
			xs[i] = x
			sumWant += want[i]
			sumGot += x
		}
		delta := (sumWant - sumGot) / float64(len(members))
		for _, i := range members {
			xs[i] += delta
		}
	}
	return xs
}
