package parser

// LabelMap is the bidirectional mapping between label names and
// word-indices built during assembly.
type LabelMap struct {
	byName  map[string]int
	byIndex map[int]string
}

// NewLabelMap creates an empty label map.
func NewLabelMap() *LabelMap {
	return &LabelMap{byName: make(map[string]int), byIndex: make(map[int]string)}
}

// Define records name at the given word index. Redefinition is reported
// by the caller as ErrorDuplicateLabel before Define is invoked.
func (m *LabelMap) Define(name string, index int) {
	m.byName[name] = index
	m.byIndex[index] = name
}

// Lookup returns the word index for name, if defined.
func (m *LabelMap) Lookup(name string) (int, bool) {
	idx, ok := m.byName[name]
	return idx, ok
}

// Has reports whether name is already defined.
func (m *LabelMap) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// NameAt returns the label name defined at word index idx, for
// human-readable disassembly.
func (m *LabelMap) NameAt(idx int) (string, bool) {
	name, ok := m.byIndex[idx]
	return name, ok
}
