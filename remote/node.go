package remote

import (
	"fmt"
	"sync"

	"github.com/go-olink/olink"
)

// NodeMetrics is the narrow interface a remote Node reports inbound
// link, unlink and invoke counts to. Satisfied structurally by
// *internal/metrics.Recorder; nil is the default and every call site
// tolerates it.
type NodeMetrics interface {
	IncLink(direction string)
	IncUnlink(direction string)
	IncInvoke(direction string)
}

// Node is a server-side endpoint. It dispatches inbound Link, Unlink,
// SetProperty and Invoke requests to the Source registered in its
// Registry for the addressed object, and emits PropertyChange, Signal
// and InvokeReply messages back to its peer.
type Node struct {
	*olink.BaseNode

	registry *Registry
	id       int64
	metrics  NodeMetrics

	mu     sync.Mutex
	linked []string
}

// SetMetrics installs m as the node's metrics sink. Passing nil turns
// metrics reporting back off.
func (n *Node) SetMetrics(m NodeMetrics) { n.metrics = m }

// NewNode creates a remote node communicating in format, assigns it a
// node-id and attaches it to registry.
func NewNode(registry *Registry, format olink.Format) *Node {
	n := &Node{registry: registry}
	n.BaseNode = olink.NewBaseNode(format, n)
	n.id = registry.AttachNode(n)
	return n
}

// ID returns the node-id the registry assigned at construction.
func (n *Node) ID() int64 { return n.id }

// HandleLink implements the Link branch of BaseNode's inbound
// dispatch. It registers this node into the source's node-set before
// calling OlinkLinked, then emits the Init snapshot.
func (n *Node) HandleLink(objectId string) {
	source, ok := n.registry.Link(objectId, n)
	if !ok {
		n.Logf(olink.LevelWarning, "Link for unregistered object %s, dropping", objectId)
		return
	}
	n.mu.Lock()
	n.linked = append(n.linked, objectId)
	n.mu.Unlock()
	if n.metrics != nil {
		n.metrics.IncLink("in")
	}

	source.OlinkLinked(objectId, n)
	props := source.OlinkCollectProperties()
	n.EmitWrite(olink.NewInit(objectId, props))
}

// HandleUnlink implements the Unlink branch of BaseNode's inbound
// dispatch. It notifies the source before removing this node from its
// node-set, so a source's OlinkUnlinked still observes itself in
// Registry.Nodes for this node if it checks.
func (n *Node) HandleUnlink(objectId string) {
	if source, ok := n.registry.GetSource(objectId); ok {
		source.OlinkUnlinked(objectId)
	}
	n.registry.Unlink(objectId, n)
	n.mu.Lock()
	n.forgetLinked(objectId)
	n.mu.Unlock()
	if n.metrics != nil {
		n.metrics.IncUnlink("in")
	}
}

func (n *Node) forgetLinked(objectId string) {
	for i, id := range n.linked {
		if id == objectId {
			n.linked = append(n.linked[:i], n.linked[i+1:]...)
			return
		}
	}
}

// HandleSetProperty implements the SetProperty branch of BaseNode's
// inbound dispatch.
func (n *Node) HandleSetProperty(propertyId string, value any) {
	objectId := olink.GetObjectId(propertyId)
	source, ok := n.registry.GetSource(objectId)
	if !ok {
		n.Logf(olink.LevelWarning, "SetProperty for unregistered object %s, dropping", objectId)
		return
	}
	source.OlinkSetProperty(propertyId, value)
}

// HandleInvoke implements the Invoke branch of BaseNode's inbound
// dispatch. A panicking Source.OlinkInvoke is recovered and reported
// back to the caller as an Error message instead of crossing the
// core's public boundary, the "production implementation" behavior
// spec.md §4.7 calls out but leaves undone in the reference core.
func (n *Node) HandleInvoke(requestId int64, methodId string, args []any) {
	objectId := olink.GetObjectId(methodId)
	source, ok := n.registry.GetSource(objectId)
	if !ok {
		n.Logf(olink.LevelWarning, "Invoke for unregistered object %s, dropping", objectId)
		n.EmitWrite(olink.NewError(olink.KindInvoke, requestId, fmt.Sprintf("unregistered object %s", objectId)))
		return
	}

	if n.metrics != nil {
		n.metrics.IncInvoke("in")
	}
	returnValue, err := n.invokeSource(source, methodId, args)
	if err != nil {
		n.Logf(olink.LevelError, "Invoke %s panicked: %v", methodId, err)
		n.EmitWrite(olink.NewError(olink.KindInvoke, requestId, err.Error()))
		return
	}
	n.EmitWrite(olink.NewInvokeReply(requestId, methodId, returnValue))
}

func (n *Node) invokeSource(source Source, methodId string, args []any) (returnValue any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	returnValue = source.OlinkInvoke(methodId, args)
	return returnValue, nil
}

// NotifyPropertyChange emits a PropertyChange on this node only. A
// source that wants fanout to every linked node iterates the node-set
// returned by Registry.Nodes and calls this on each.
func (n *Node) NotifyPropertyChange(propertyId string, value any) {
	n.EmitWrite(olink.NewPropertyChange(propertyId, value))
}

// NotifySignal emits a Signal on this node.
func (n *Node) NotifySignal(signalId string, args []any) {
	n.EmitWrite(olink.NewSignal(signalId, args))
}

// WritePropertyChange is a synonym for NotifyPropertyChange.
func (n *Node) WritePropertyChange(propertyId string, value any) {
	n.NotifyPropertyChange(propertyId, value)
}

// Close unwinds the node: for every object it has linked, in the
// order HandleLink established them, it calls the source's
// OlinkUnlinked if alive, then removes itself from the source's
// node-set, then detaches from the registry.
func (n *Node) Close() {
	n.mu.Lock()
	linked := n.linked
	n.linked = nil
	n.mu.Unlock()

	for _, objectId := range linked {
		if source, ok := n.registry.GetSource(objectId); ok {
			source.OlinkUnlinked(objectId)
		}
		n.registry.Unlink(objectId, n)
	}
	n.registry.DetachNode(n.id)
}
