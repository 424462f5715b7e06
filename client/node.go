package client

import (
	"sync"
	"sync/atomic"

	"github.com/go-olink/olink"
)

// NodeMetrics is the narrow interface a client Node reports link,
// unlink, invoke and pending-invocation counts to. Satisfied
// structurally by *internal/metrics.Recorder; nil is the default and
// every call site tolerates it.
type NodeMetrics interface {
	IncLink(direction string)
	IncUnlink(direction string)
	IncInvoke(direction string)
	SetPending(nodeID int64, count int)
}

// Node is a client-side endpoint. It emits Link, Unlink, Invoke and
// SetProperty requests and routes inbound Init, PropertyChange,
// Signal, InvokeReply and Error messages to the Sink registered in
// its Registry for the addressed object.
type Node struct {
	*olink.BaseNode

	registry *Registry
	id       int64
	metrics  NodeMetrics

	nextRequestID int64
	pending       *pendingInvokes

	mu     sync.Mutex
	linked []string
}

// SetMetrics installs m as the node's metrics sink. Passing nil turns
// metrics reporting back off.
func (n *Node) SetMetrics(m NodeMetrics) { n.metrics = m }

// NewNode creates a client node communicating in format, assigns it a
// node-id and attaches it to registry.
func NewNode(registry *Registry, format olink.Format) *Node {
	n := &Node{
		registry: registry,
		pending:  newPendingInvokes(),
	}
	n.BaseNode = olink.NewBaseNode(format, n)
	n.id = registry.AttachNode(n)
	return n
}

// ID returns the node-id the registry assigned at construction.
func (n *Node) ID() int64 { return n.id }

// LinkRemote emits a Link message for objectId and binds this node as
// its current linked node in the registry. It does not consult prior
// state — calling it twice for the same objectId emits two Link
// messages, matching the protocol's wire-level statelessness.
func (n *Node) LinkRemote(objectId string) {
	n.Logf(olink.LevelInfo, "linking %s", objectId)
	n.EmitWrite(olink.NewLink(objectId))
	n.registry.SetNode(objectId, n)
	n.mu.Lock()
	n.linked = append(n.linked, objectId)
	n.mu.Unlock()
	if n.metrics != nil {
		n.metrics.IncLink("out")
	}
}

// UnlinkRemote emits an Unlink message for objectId, calls the
// registered sink's OlinkOnRelease if the sink is still alive, then
// clears the registry's node binding. Calling it repeatedly for the
// same objectId repeats all three steps each time.
func (n *Node) UnlinkRemote(objectId string) {
	n.EmitWrite(olink.NewUnlink(objectId))
	if sink, ok := n.registry.GetSink(objectId); ok {
		sink.OlinkOnRelease()
	}
	n.registry.UnsetNode(objectId)
	n.mu.Lock()
	n.forgetLinked(objectId)
	n.mu.Unlock()
	if n.metrics != nil {
		n.metrics.IncUnlink("out")
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

// InvokeRemote allocates the next monotonic requestId, records the
// pending invocation under the pending-invokes lock unless reply is
// nil (fire-and-forget), and emits an Invoke message. It returns the
// allocated requestId.
func (n *Node) InvokeRemote(methodId string, args []any, reply ReplyFunc) int64 {
	requestId := n.nextRequestId()
	if reply != nil {
		n.pending.add(requestId, methodId, reply)
	}
	n.EmitWrite(olink.NewInvoke(requestId, methodId, args))
	if n.metrics != nil {
		n.metrics.IncInvoke("out")
		n.metrics.SetPending(n.id, n.pending.len())
	}
	return requestId
}

// nextRequestId is a node-local atomic counter starting at 0.
// Wrap-around is not handled: a 64-bit counter is assumed effectively
// unbounded.
func (n *Node) nextRequestId() int64 {
	return atomic.AddInt64(&n.nextRequestID, 1) - 1
}

// SetRemoteProperty emits a SetProperty message. No state is retained
// client-side for the call.
func (n *Node) SetRemoteProperty(propertyId string, value any) {
	n.EmitWrite(olink.NewSetProperty(propertyId, value))
}

// HandleInit implements the Init branch of BaseNode's inbound dispatch.
func (n *Node) HandleInit(objectId string, props map[string]any) {
	sink, ok := n.registry.GetSink(objectId)
	if !ok {
		n.Logf(olink.LevelWarning, "Init for unregistered object %s, dropping", objectId)
		return
	}
	sink.OlinkOnInit(objectId, props, n)
}

// HandlePropertyChange implements the PropertyChange branch of
// BaseNode's inbound dispatch.
func (n *Node) HandlePropertyChange(propertyId string, value any) {
	objectId := olink.GetObjectId(propertyId)
	sink, ok := n.registry.GetSink(objectId)
	if !ok {
		n.Logf(olink.LevelWarning, "PropertyChange for unregistered object %s, dropping", objectId)
		return
	}
	sink.OlinkOnPropertyChanged(propertyId, value)
}

// HandleSignal implements the Signal branch of BaseNode's inbound
// dispatch.
func (n *Node) HandleSignal(signalId string, args []any) {
	objectId := olink.GetObjectId(signalId)
	sink, ok := n.registry.GetSink(objectId)
	if !ok {
		n.Logf(olink.LevelWarning, "Signal for unregistered object %s, dropping", objectId)
		return
	}
	sink.OlinkOnSignal(signalId, args)
}

// HandleInvokeReply implements the InvokeReply branch of BaseNode's
// inbound dispatch. The methodId carried by the reply is passed
// through verbatim; it is never checked against the methodId of the
// original Invoke.
func (n *Node) HandleInvokeReply(requestId int64, methodId string, value any) {
	item, ok := n.pending.resolve(requestId)
	if !ok {
		n.Logf(olink.LevelWarning, "InvokeReply for unknown requestId %d, dropping", requestId)
		return
	}
	if n.metrics != nil {
		n.metrics.SetPending(n.id, n.pending.len())
	}
	item.reply(methodId, value)
}

// HandleError implements the Error branch of BaseNode's inbound
// dispatch. It only logs: an inbound Error never automatically fails
// the pending invocation matching its requestId (see the protocol's
// open question on this point).
func (n *Node) HandleError(msgType olink.Kind, requestId int64, errorString string) {
	n.Logf(olink.LevelError, "peer error for %s requestId=%d: %s", msgType, requestId, errorString)
}

// Close unwinds the node: for every object it has linked, in the
// order LinkRemote established them, it emits Unlink and releases the
// sink if alive, then detaches from the registry. Pending invocations
// are dropped without firing their callbacks.
func (n *Node) Close() {
	n.mu.Lock()
	linked := n.linked
	n.linked = nil
	n.mu.Unlock()

	for _, objectId := range linked {
		n.UnlinkRemote(objectId)
	}
	n.pending.discardAll()
	if n.metrics != nil {
		n.metrics.SetPending(n.id, 0)
	}
	n.registry.DetachNode(n.id)
}
