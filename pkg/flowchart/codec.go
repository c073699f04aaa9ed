package flowchart

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
)

// Definition file formats accepted by [Decode].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://codeflow.dev/schema/flowchart.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func loadSchema() {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		schemaErr = err
		return
	}
	schema, schemaErr = c.Compile(schemaURL)
}

// nodeJSON is the wire form of a node. Hand-authored files may say "text"
// instead of "label".
type nodeJSON struct {
	ID    int      `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label,omitempty"`
	Text  string   `json:"text,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

type edgeJSON struct {
	From int      `json:"from"`
	To   int      `json:"to"`
	Kind EdgeKind `json:"kind,omitempty"`
	Text string   `json:"text,omitempty"`
}

type flowchartJSON struct {
	Canvas *Canvas     `json:"canvas,omitempty"`
	Nodes  []nodeJSON `json:"nodes"`
	Edges  []edgeJSON `json:"edges"`
}

// MarshalJSON encodes a node as {"id","type","label","x","y"}.
func (n Node) MarshalJSON() ([]byte, error) {
	w := nodeJSON{ID: n.ID, Type: n.Type, Label: n.Label}
	if n.Pos != nil {
		x, y := n.Pos.X, n.Pos.Y
		w.X, w.Y = &x, &y
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the form written by [Node.MarshalJSON].
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = w.node()
	return nil
}

func (w nodeJSON) node() Node {
	n := Node{ID: w.ID, Type: w.Type, Label: w.Label}
	if n.Label == "" {
		n.Label = w.Text
	}
	if w.X != nil && w.Y != nil {
		n.Pos = &Point{X: *w.X, Y: *w.Y}
	}
	return n
}

// MarshalJSON encodes an edge as {"from","to","kind","text"}.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(edgeJSON(e))
}

// UnmarshalJSON decodes the form written by [Edge.MarshalJSON].
func (e *Edge) UnmarshalJSON(data []byte) error {
	var w edgeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Edge(w)
	return nil
}

// MarshalJSON encodes the chart with lowercase keys.
func (f *Flowchart) MarshalJSON() ([]byte, error) {
	w := struct {
		Canvas Canvas `json:"canvas"`
		Nodes  []Node `json:"nodes"`
		Edges  []Edge `json:"edges"`
	}{f.Canvas, f.Nodes, f.Edges}
	if w.Nodes == nil {
		w.Nodes = []Node{}
	}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the form written by [Flowchart.MarshalJSON] without
// schema validation. Use [Decode] for untrusted input.
func (f *Flowchart) UnmarshalJSON(data []byte) error {
	var w flowchartJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = Flowchart{Canvas: UnitCanvas}
	if w.Canvas != nil {
		f.Canvas = *w.Canvas
	}
	for _, n := range w.Nodes {
		f.Nodes = append(f.Nodes, n.node())
	}
	for _, e := range w.Edges {
		f.Edges = append(f.Edges, Edge(e))
	}
	return nil
}

// WriteJSON writes f as indented JSON.
func WriteJSON(w io.Writer, f *Flowchart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// ReadJSON reads and validates a JSON definition.
func ReadJSON(r io.Reader) (*Flowchart, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeIO, err, "read definition")
	}
	return Decode(data, FormatJSON)
}

// ReadTOML reads and validates a TOML definition.
func ReadTOML(r io.Reader) (*Flowchart, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeIO, err, "read definition")
	}
	return Decode(data, FormatTOML)
}

// Decode parses a definition in the given format, validates it against the
// embedded schema and then against [Flowchart.Validate].
func Decode(data []byte, format string) (*Flowchart, error) {
	doc, err := normalize(data, format)
	if err != nil {
		return nil, err
	}

	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInternal, schemaErr, "compile flowchart schema")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidFlowchart, err, "definition does not match schema")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInternal, err, "re-encode definition")
	}
	var w flowchartJSON
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidFlowchart, err, "decode definition")
	}

	fc := &Flowchart{
		Nodes:  make([]Node, 0, len(w.Nodes)),
		Edges:  make([]Edge, 0, len(w.Edges)),
		Canvas: UnitCanvas,
	}
	if w.Canvas != nil {
		fc.Canvas = *w.Canvas
	}
	for _, n := range w.Nodes {
		fc.Nodes = append(fc.Nodes, n.node())
	}
	for _, e := range w.Edges {
		fc.Edges = append(fc.Edges, Edge(e))
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// normalize turns a JSON or TOML document into the generic value tree the
// schema validator expects.
func normalize(data []byte, format string) (any, error) {
	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidInput, err, "parse JSON definition")
		}
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidInput, err, "parse TOML definition")
		}
		// TOML integers decode as int64; a JSON round trip gives the validator
		// the same float64 numbers it sees for JSON input.
		raw, err := json.Marshal(m)
		if err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidInput, err, "convert TOML definition")
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidInput, err, "convert TOML definition")
		}
	default:
		return nil, cferrors.New(cferrors.ErrCodeInvalidFormat, "unsupported definition format: %s", format)
	}
	return doc, nil
}

// FormatFromPath returns the definition format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(strings.ToLower(path), ".toml"):
		return FormatTOML, nil
	}
	return "", cferrors.New(cferrors.ErrCodeInvalidFormat, "unsupported definition file %s (want .json or .toml)", path)
}

// String returns a short summary used in log lines.
func (f *Flowchart) String() string {
	return fmt.Sprintf("flowchart(%d nodes, %d edges)", len(f.Nodes), len(f.Edges))
}
