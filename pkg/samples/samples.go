// Package samples provides hand-authored flowcharts with fixed positions.
//
// Each sample is built fresh on every call to [Get], so callers may modify
// the result.
package samples

import (
	"slices"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/flowchart"
)

// Sample describes one built-in chart.
type Sample struct {
	Name        string
	Description string
	Output      string // default output file name without extension
	build       func() *flowchart.Flowchart
}

// Default is the sample drawn when no name is given.
const Default = "simple"

var registry = []Sample{
	{Name: "simple", Description: "Print a until a counter reaches five", Output: "flowchart", build: simple},
	{Name: "bubble-sort", Description: "Bubble sort over an input array", Output: "bubble_sort_flowchart", build: bubbleSort},
	{Name: "calculator", Description: "Four-operation calculator", Output: "calculator_flowchart", build: calculator},
	{Name: "guessing-game", Description: "Number guessing game with ten attempts", Output: "guessing_game_flowchart", build: guessingGame},
}

// Names returns the sample names in display order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// All returns every sample in display order.
func All() []Sample { return slices.Clone(registry) }

// Lookup returns the sample metadata for name.
func Lookup(name string) (Sample, error) {
	if name == "" {
		name = Default
	}
	for _, s := range registry {
		if s.Name == name {
			return s, nil
		}
	}
	return Sample{}, cferrors.New(cferrors.ErrCodeSampleNotFound, "unknown sample %q (valid: %v)", name, Names())
}

// Get returns a fresh copy of the named chart.
func Get(name string) (*flowchart.Flowchart, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.Chart(), nil
}

// Chart builds the sample's flowchart.
func (s Sample) Chart() *flowchart.Flowchart { return s.build() }

type node struct {
	typ   flowchart.NodeType
	label string
	x, y  float64
}

type link struct {
	from, to int
	text     string
}

// chart assembles nodes with ids in slice order. Edges labelled "Yes" or
// "No" carry no kind; decisions are coloured by direction.
func chart(nodes []node, links []link) *flowchart.Flowchart {
	fc := flowchart.New()
	for i, n := range nodes {
		fc.Nodes = append(fc.Nodes, flowchart.Node{
			ID:    i,
			Type:  n.typ,
			Label: n.label,
			Pos:   &flowchart.Point{X: n.x, Y: n.y},
		})
	}
	for _, l := range links {
		fc.Edges = append(fc.Edges, flowchart.Edge{From: l.from, To: l.to, Text: l.text})
	}
	return fc
}

const (
	start    = flowchart.TypeStartEnd
	process  = flowchart.TypeProcess
	decision = flowchart.TypeDecision
	inOut    = flowchart.TypeInputOutput
)

func simple() *flowchart.Flowchart {
	return chart([]node{
		{start, "Start", 0.5, 0.95},
		{inOut, "Input a", 0.5, 0.80},
		{process, "c = 1", 0.5, 0.65},
		{decision, "c < 5", 0.5, 0.50},
		{process, "Print a", 0.7, 0.50},
		{process, "c = c + 1", 0.7, 0.35},
		{start, "Stop", 0.3, 0.50},
	}, []link{
		{0, 1, ""}, {1, 2, ""}, {2, 3, ""},
		{3, 4, "Yes"}, {3, 6, "No"},
		{4, 5, ""}, {5, 3, ""},
	})
}

func bubbleSort() *flowchart.Flowchart {
	return chart([]node{
		{start, "Start", 0.5, 0.95},
		{inOut, "Input array", 0.5, 0.87},
		{process, "n = length(array)", 0.5, 0.79},
		{process, "i = 0", 0.5, 0.71},
		{decision, "i < n-1", 0.5, 0.63},
		{process, "j = 0", 0.5, 0.55},
		{decision, "j < n-i-1", 0.5, 0.47},
		{decision, "array[j] > array[j+1]", 0.5, 0.39},
		{process, "Swap array[j] and array[j+1]", 0.75, 0.39},
		{process, "j = j + 1", 0.5, 0.31},
		{process, "i = i + 1", 0.5, 0.23},
		{inOut, "Output sorted array", 0.5, 0.15},
		{start, "End", 0.5, 0.07},
	}, []link{
		{0, 1, ""}, {1, 2, ""}, {2, 3, ""}, {3, 4, ""},
		{4, 5, "Yes"}, {4, 11, "No"},
		{5, 6, ""},
		{6, 7, "Yes"}, {6, 10, "No"},
		{7, 8, "Yes"}, {7, 9, "No"},
		{8, 9, ""}, {9, 6, ""}, {10, 4, ""}, {11, 12, ""},
	})
}

func calculator() *flowchart.Flowchart {
	return chart([]node{
		{start, "Start", 0.5, 0.95},
		{inOut, "Input num1", 0.5, 0.85},
		{inOut, "Input num2", 0.5, 0.75},
		{inOut, "Input operation", 0.5, 0.65},
		{decision, "operation == '+'", 0.5, 0.55},
		{process, "result = num1 + num2", 0.75, 0.55},
		{decision, "operation == '-'", 0.5, 0.45},
		{process, "result = num1 - num2", 0.75, 0.45},
		{decision, "operation == '*'", 0.5, 0.35},
		{process, "result = num1 * num2", 0.75, 0.35},
		{decision, "operation == '/'", 0.5, 0.25},
		{process, "result = num1 / num2", 0.75, 0.25},
		{process, "result = 'Invalid'", 0.5, 0.15},
		{inOut, "Output result", 0.5, 0.05},
		{start, "End", 0.25, 0.05},
	}, []link{
		{0, 1, ""}, {1, 2, ""}, {2, 3, ""}, {3, 4, ""},
		{4, 5, "Yes"}, {4, 6, "No"}, {5, 13, ""},
		{6, 7, "Yes"}, {6, 8, "No"}, {7, 13, ""},
		{8, 9, "Yes"}, {8, 10, "No"}, {9, 13, ""},
		{10, 11, "Yes"}, {10, 12, "No"}, {11, 13, ""},
		{12, 13, ""}, {13, 14, ""},
	})
}

func guessingGame() *flowchart.Flowchart {
	return chart([]node{
		{start, "Start", 0.5, 0.95},
		{process, "Generate random number", 0.5, 0.87},
		{process, "attempts = 0", 0.5, 0.79},
		{process, "game_over = False", 0.5, 0.71},
		{decision, "game_over == False", 0.5, 0.63},
		{inOut, "Input guess", 0.5, 0.55},
		{process, "attempts += 1", 0.5, 0.47},
		{decision, "guess == number", 0.5, 0.39},
		{inOut, "Output 'Correct!'", 0.75, 0.39},
		{process, "game_over = True", 0.75, 0.31},
		{decision, "guess < number", 0.5, 0.31},
		{inOut, "Output 'Too low!'", 0.75, 0.23},
		{inOut, "Output 'Too high!'", 0.25, 0.23},
		{decision, "attempts >= 10", 0.5, 0.15},
		{process, "game_over = True", 0.75, 0.15},
		{inOut, "Output attempts", 0.5, 0.07},
		{start, "End", 0.25, 0.07},
	}, []link{
		{0, 1, ""}, {1, 2, ""}, {2, 3, ""}, {3, 4, ""},
		{4, 5, "Yes"}, {4, 15, "No"},
		{5, 6, ""}, {6, 7, ""},
		{7, 8, "Yes"}, {7, 10, "No"},
		{8, 9, ""}, {9, 4, ""},
		{10, 11, "Yes"}, {10, 12, "No"},
		{11, 13, ""}, {12, 13, ""},
		{13, 14, "Yes"}, {13, 4, "No"},
		{14, 4, ""}, {15, 16, ""},
	})
}
