package model

// Event is one parsed line from a source: either a schema declaration
// (Names set) or a data row (Values set). A line that is neither is
// dropped by the parser and never reaches the engine.
type Event struct {
	Names  []string
	Values []float64
}

// IsHeader reports whether the event re-declares the channel set.
func (e Event) IsHeader() bool {
	return len(e.Names) > 0
}
