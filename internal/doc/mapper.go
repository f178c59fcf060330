package doc

// Mapper correlates rendering-tree artifacts with their model nodes.
// Keys are opaque to this package (the renderer registers whatever it
// uses as a view handle). Lookups are fallible: the mapper is rebuilt
// only on full conversions, so a view observed between conversions may
// have no registered counterpart. Callers needing reliability layer
// their own fallback on top.
type Mapper struct {
	toModel map[any]*Node
	toView  map[*Node]any
}

// NewMapper creates an empty mapper.
func NewMapper() *Mapper {
	return &Mapper{
		toModel: make(map[any]*Node),
		toView:  make(map[*Node]any),
	}
}

// Bind registers a view↔model pair, replacing any prior binding for
// either side.
func (m *Mapper) Bind(view any, n *Node) {
	if prev, ok := m.toView[n]; ok {
		delete(m.toModel, prev)
	}
	if prev, ok := m.toModel[view]; ok {
		delete(m.toView, prev)
	}
	m.toModel[view] = n
	m.toView[n] = view
}

// ToModel resolves a view handle to its model node.
func (m *Mapper) ToModel(view any) (*Node, bool) {
	n, ok := m.toModel[view]
	return n, ok
}

// ToView resolves a model node to its view handle.
func (m *Mapper) ToView(n *Node) (any, bool) {
	v, ok := m.toView[n]
	return v, ok
}

// Clear drops all bindings. Called before a full reconversion.
func (m *Mapper) Clear() {
	m.toModel = make(map[any]*Node)
	m.toView = make(map[*Node]any)
}
