package flowchart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	cferrors "github.com/matzehuels/codeflow/pkg/errors"
)

const simpleJSON = `{
  "nodes": [
    {"id": 0, "type": "start_end", "text": "Start", "x": 0.5, "y": 0.95},
    {"id": 1, "type": "decision", "label": "c < 5", "x": 0.5, "y": 0.5}
  ],
  "edges": [
    {"from": 0, "to": 1, "text": ""},
    {"from": 1, "to": 0, "kind": "true", "text": "Yes"}
  ]
}`

const simpleTOML = `
[[nodes]]
id = 0
type = "start_end"
text = "Start"
x = 0.5
y = 0.95

[[nodes]]
id = 1
type = "decision"
label = "c < 5"
x = 0.5
y = 0.5

[[edges]]
from = 0
to = 1

[[edges]]
from = 1
to = 0
kind = "true"
text = "Yes"
`

func TestReadJSONAndTOMLAgree(t *testing.T) {
	fromJSON, err := ReadJSON(strings.NewReader(simpleJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	fromTOML, err := ReadTOML(strings.NewReader(simpleTOML))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if diff := cmp.Diff(fromJSON, fromTOML); diff != "" {
		t.Errorf("JSON and TOML definitions differ (-json +toml):\n%s", diff)
	}

	if fromJSON.Nodes[0].Label != "Start" {
		t.Errorf("text alias not applied: label = %q", fromJSON.Nodes[0].Label)
	}
	if !fromJSON.Placed() {
		t.Error("definition with coordinates should be placed")
	}
	if fromJSON.Canvas != UnitCanvas {
		t.Errorf("default canvas = %+v, want unit canvas", fromJSON.Canvas)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode cferrors.Code
	}{
		{"not json", `{`, cferrors.ErrCodeInvalidInput},
		{"no nodes", `{"nodes": []}`, cferrors.ErrCodeInvalidFlowchart},
		{"missing label", `{"nodes": [{"id": 0, "type": "process"}]}`, cferrors.ErrCodeInvalidFlowchart},
		{"x without y", `{"nodes": [{"id": 0, "type": "process", "label": "a", "x": 1}]}`, cferrors.ErrCodeInvalidFlowchart},
		{"bad kind", `{"nodes": [{"id": 0, "type": "process", "label": "a"}], "edges": [{"from": 0, "to": 0, "kind": "maybe"}]}`, cferrors.ErrCodeInvalidFlowchart},
		{"unknown field", `{"nodes": [{"id": 0, "type": "process", "label": "a", "color": "red"}]}`, cferrors.ErrCodeInvalidFlowchart},
		{"dangling", `{"nodes": [{"id": 0, "type": "process", "label": "a"}], "edges": [{"from": 0, "to": 3}]}`, cferrors.ErrCodeInvalidFlowchart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), FormatJSON)
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if got := cferrors.GetCode(err); got != tt.wantCode {
				t.Errorf("Decode() code = %q, want %q (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestDecodeDanglingIsSentinel(t *testing.T) {
	_, err := Decode([]byte(`{"nodes": [{"id": 0, "type": "process", "label": "a"}], "edges": [{"from": 0, "to": 3}]}`), FormatJSON)
	if !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("error = %v, want ErrDanglingEdge", err)
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode([]byte(`{}`), "yaml")
	if !cferrors.Is(err, cferrors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(yaml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	in, err := ReadJSON(strings.NewReader(simpleJSON))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"label": "Start"`) {
		t.Errorf("WriteJSON output lacks label field:\n%s", buf.String())
	}

	out, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(WriteJSON()): %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestWriteJSONUnplacedOmitsCoordinates(t *testing.T) {
	b := NewBuilder()
	b.AddNode(b.Allocate(), TypeModule, "Module")
	var buf bytes.Buffer
	if err := WriteJSON(&buf, b.Flowchart()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"x"`) {
		t.Errorf("unplaced node encoded with coordinates:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"edges": []`) {
		t.Errorf("empty edge list should encode as []:\n%s", buf.String())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"chart.json", FormatJSON, false},
		{"dir/Chart.TOML", FormatTOML, false},
		{"chart.yaml", "", true},
		{"chart", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
