package cache

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey keys the flowchart parsed from a source file.
	GraphKey(sourceHash string, opts GraphKeyOpts) string

	// ArtifactKey keys a rendered image of a flowchart.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the inputs besides the source that change a parsed graph.
type GraphKeyOpts struct {
	Language string `json:"language"`
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Renderer string  `json:"renderer"`
	Format   string  `json:"format"`
	Theme    string  `json:"theme"`
	Scale    float64 `json:"scale,omitempty"`
	Title    string  `json:"title,omitempty"`
}

// DefaultKeyer produces "graph:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey implements [Keyer].
func (DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
