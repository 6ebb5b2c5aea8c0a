package thicket

// Layer tags a node with a collision category. Layer pairs are only tested
// against each other when the World's LayerTable says they interact.
type Layer string

// Built-in layers. Any other string registers itself on first use.
const (
	LayerDefault Layer = "default"
	LayerTerrain Layer = "terrain" // walls, ground
	LayerUnit    Layer = "unit"    // characters, enemies, NPCs
)

// LayerTable tracks the known layers and a symmetric adjacency table of which
// layer pairs interact. A new layer interacts with every layer already known,
// including itself.
type LayerTable struct {
	known       []Layer
	interact    map[Layer]map[Layer]struct{}
	initialized bool
}

// NewLayerTable returns a table holding the built-in layers.
func NewLayerTable() *LayerTable {
	t := &LayerTable{interact: make(map[Layer]map[Layer]struct{})}
	for _, l := range []Layer{LayerDefault, LayerTerrain, LayerUnit} {
		t.Register(l)
	}
	return t
}

// Register adds l to the table if it is new, making it interact with every
// known layer and itself. Returns false if l was already known.
func (t *LayerTable) Register(l Layer) bool {
	if _, ok := t.interact[l]; ok {
		return false
	}
	set := make(map[Layer]struct{}, len(t.known)+1)
	for _, other := range t.known {
		set[other] = struct{}{}
		t.interact[other][l] = struct{}{}
	}
	set[l] = struct{}{}
	t.interact[l] = set
	t.known = append(t.known, l)
	return true
}

// Initialize seeds the adjacency table so every known layer pair interacts,
// discarding any earlier SetInteraction calls.
func (t *LayerTable) Initialize() {
	for _, l := range t.known {
		set := make(map[Layer]struct{}, len(t.known))
		for _, other := range t.known {
			set[other] = struct{}{}
		}
		t.interact[l] = set
	}
	t.initialized = true
}

// ensureInitialized runs Initialize once, before the first tick or edit.
func (t *LayerTable) ensureInitialized() {
	if !t.initialized {
		t.Initialize()
	}
}

// SetInteraction enables or disables collision testing between a and b.
// The edit is symmetric. Unknown layers are registered first.
func (t *LayerTable) SetInteraction(a, b Layer, enabled bool) {
	t.ensureInitialized()
	t.Register(a)
	t.Register(b)
	if enabled {
		t.interact[a][b] = struct{}{}
		t.interact[b][a] = struct{}{}
		return
	}
	delete(t.interact[a], b)
	delete(t.interact[b], a)
}

// CanInteract reports whether a and b are tested against each other.
// Unknown layers interact with everything, as they would right after
// registering.
func (t *LayerTable) CanInteract(a, b Layer) bool {
	set, ok := t.interact[a]
	if !ok {
		return true
	}
	if _, known := t.interact[b]; !known {
		return true
	}
	_, ok = set[b]
	return ok
}

// Layers returns the known layers in registration order.
// The returned slice MUST NOT be mutated by the caller.
func (t *LayerTable) Layers() []Layer {
	return t.known
}
