package list

import "sync"

// SliceHost is a Host backed by a slice. Focus is a single node, so
// FocusPath has at most one element.
type SliceHost struct {
	mu      sync.Mutex
	nodes   []Node
	focused Node
}

// NewSliceHost returns a host holding nodes.
func NewSliceHost(nodes ...Node) *SliceHost {
	return &SliceHost{nodes: nodes}
}

// Children implements Host.
func (h *SliceHost) Children() []Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Node(nil), h.nodes...)
}

// Focus implements Host.
func (h *SliceHost) Focus(n Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.focused = n
}

// FocusPath implements Host.
func (h *SliceHost) FocusPath() []Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.focused == nil {
		return nil
	}
	return []Node{h.focused}
}

// Focused returns the node last given focus.
func (h *SliceHost) Focused() Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focused
}

// Blur drops host focus.
func (h *SliceHost) Blur() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.focused = nil
}

// Append adds nodes at the end.
func (h *SliceHost) Append(nodes ...Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nodes = append(h.nodes, nodes...)
}

// Insert places n at position i.
func (h *SliceHost) Insert(i int, n Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i = max(0, min(i, len(h.nodes)))
	h.nodes = append(h.nodes[:i], append([]Node{n}, h.nodes[i:]...)...)
}

// Remove deletes n and reports whether it was present.
func (h *SliceHost) Remove(n Node) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, c := range h.nodes {
		if c == n {
			h.nodes = append(h.nodes[:i], h.nodes[i+1:]...)
			if h.focused == n {
				h.focused = nil
			}
			return true
		}
	}
	return false
}

// Replace swaps in a new set of children.
func (h *SliceHost) Replace(nodes ...Node) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nodes = nodes
	h.focused = nil
}
