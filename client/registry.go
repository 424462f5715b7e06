package client

import (
	"sync"
	"weak"
)

// sinkEntry is one objectId -> (sink, linked node) binding. The node
// field is a weak.Pointer so the registry never extends a Node's
// lifetime purely by remembering which node last linked the object;
// Sink itself is held as a plain interface value — Go's tracing
// collector gives interface values no lighter-weight handle than a
// strong reference, so an application that wants a sink collected
// must call RemoveSink itself (the same explicit-deregistration
// contract the protocol already requires of RemoteRegistry sources).
type sinkEntry struct {
	objectId string
	sink     Sink
	node     weak.Pointer[Node]
}

// Registry is the objectId -> (sink, linked node) directory shared by
// every ClientNode on one side of a transport, plus the node-id
// allocator used by Node's factory.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]*sinkEntry
	nodes      map[int64]*Node
	nextNodeID int64
}

// NewRegistry constructs an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*sinkEntry),
		nodes:   make(map[int64]*Node),
	}
}

// AddSink reads sink.OlinkObjectName() once and registers sink under
// that id, replacing any prior sink for the same id.
func (r *Registry) AddSink(sink Sink) {
	objectId := sink.OlinkObjectName()
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[objectId]
	if !ok {
		e = &sinkEntry{objectId: objectId}
		r.entries[objectId] = e
	}
	e.sink = sink
}

// RemoveSink drops the entry for sink.OlinkObjectName().
func (r *Registry) RemoveSink(sink Sink) {
	r.RemoveSinkByID(sink.OlinkObjectName())
}

// RemoveSinkByID drops the entry for objectId, if any.
func (r *Registry) RemoveSinkByID(objectId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, objectId)
}

// GetSink returns the sink registered for objectId, tolerating an
// absent or never-registered entry by returning ok=false.
func (r *Registry) GetSink(objectId string) (sink Sink, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, found := r.entries[objectId]
	if !found || e.sink == nil {
		return nil, false
	}
	return e.sink, true
}

// SetNode binds node as the current linked node for objectId. If no
// entry exists yet (the node may link before the sink registers), an
// empty entry is created on demand.
func (r *Registry) SetNode(objectId string, node *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[objectId]
	if !ok {
		e = &sinkEntry{objectId: objectId}
		r.entries[objectId] = e
	}
	e.node = weak.Make(node)
}

// UnsetNode clears the node binding for objectId, if an entry exists.
func (r *Registry) UnsetNode(objectId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[objectId]; ok {
		e.node = weak.Pointer[Node]{}
	}
}

// GetNode returns the node currently bound to objectId, tolerating an
// absent entry or an already-collected node by returning ok=false.
func (r *Registry) GetNode(objectId string) (node *Node, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, found := r.entries[objectId]
	if !found {
		return nil, false
	}
	n := e.node.Value()
	if n == nil {
		return nil, false
	}
	return n, true
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
