package remote

import "sync"

// sourceEntry is one objectId -> (source, linked node-set) binding.
// Unlike the client side's weak sink references, the source field is
// a raw registered reference: the remote registry's contract requires
// the application to deregister a source explicitly (RemoveSource)
// before letting it go, matching spec.md's "raw reference, application
// must deregister before destroying" lifecycle for source entries.
type sourceEntry struct {
	objectId string
	source   Source
	nodes    map[*Node]struct{}
}

// Registry is the objectId -> (source, linked node-set) directory
// shared by every Node on one side of a transport, plus the node-id
// allocator used by Node's factory.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]*sourceEntry
	nodes      map[int64]*Node
	nextNodeID int64
}

// NewRegistry constructs an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*sourceEntry),
		nodes:   make(map[int64]*Node),
	}
}

// AddSource reads source.OlinkObjectName() once and registers source
// under that id, replacing any prior source for the same id. The
// node-set of a replaced entry is preserved.
func (r *Registry) AddSource(source Source) {
	objectId := source.OlinkObjectName()
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[objectId]
	if !ok {
		e = &sourceEntry{objectId: objectId, nodes: make(map[*Node]struct{})}
		r.entries[objectId] = e
	}
	e.source = source
}

// RemoveSource drops the entry for source.OlinkObjectName().
func (r *Registry) RemoveSource(source Source) {
	r.RemoveSourceByID(source.OlinkObjectName())
}

// RemoveSourceByID drops the entry for objectId, if any.
func (r *Registry) RemoveSourceByID(objectId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, objectId)
}

// GetSource returns the source registered for objectId, tolerating an
// absent or never-registered entry by returning ok=false.
func (r *Registry) GetSource(objectId string) (source Source, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, found := r.entries[objectId]
	if !found || e.source == nil {
		return nil, false
	}
	return e.source, true
}

// Link reports whether a live source exists for objectId and, only
// when one does, adds node to its node-set. An unregistered objectId
// reports ok=false and leaves node out of any node-set: the node-set
// must contain only currently-linked nodes of a source that actually
// exists.
func (r *Registry) Link(objectId string, node *Node) (source Source, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, found := r.entries[objectId]
	if !found || e.source == nil {
		return nil, false
	}
	e.nodes[node] = struct{}{}
	return e.source, true
}

// Unlink removes node from objectId's node-set, if an entry exists.
// Callers that must notify the source before it observes node's
// removal from the set should call GetSource first, then Unlink —
// Unlink itself does not report the source, to make that ordering the
// only way to use it correctly.
func (r *Registry) Unlink(objectId string, node *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, found := r.entries[objectId]
	if !found {
		return
	}
	delete(e.nodes, node)
}

// Nodes returns a snapshot copy of objectId's linked node-set, so
// callers may iterate and notify without holding the registry lock.
func (r *Registry) Nodes(objectId string) []*Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, found := r.entries[objectId]
	if !found {
		return nil
	}
	nodes := make([]*Node, 0, len(e.nodes))
	for n := range e.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// AttachNode registers node and returns its newly assigned, unique
// node-id.
func (r *Registry) AttachNode(node *Node) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextNodeID++
	id := r.nextNodeID
	r.nodes[id] = node
	return id
}

// DetachNode reclaims the node-id previously assigned by AttachNode.
func (r *Registry) DetachNode(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, id)
}
