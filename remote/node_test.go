package remote

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/go-olink/olink"
	"github.com/go-olink/olink/internal/testutil/testlog"
)

type fakeSource struct {
	objectId string

	props map[string]any

	linkedCalls   []linkedCall
	unlinkedCalls []string
	setPropCalls  []setPropCall
	invokeFn      func(methodId string, args []any) any
	unlinkHook    func(registry *Registry)
	registry      *Registry
}

type linkedCall struct {
	objectId string
	node     *Node
}
type setPropCall struct {
	propertyId string
	value      any
}

func (s *fakeSource) OlinkObjectName() string { return s.objectId }
func (s *fakeSource) OlinkInvoke(methodId string, args []any) any {
	if s.invokeFn != nil {
		return s.invokeFn(methodId, args)
	}
	return nil
}
func (s *fakeSource) OlinkSetProperty(propertyId string, value any) {
	s.setPropCalls = append(s.setPropCalls, setPropCall{propertyId, value})
}
func (s *fakeSource) OlinkLinked(objectId string, node *Node) {
	s.linkedCalls = append(s.linkedCalls, linkedCall{objectId, node})
}
func (s *fakeSource) OlinkUnlinked(objectId string) {
	s.unlinkedCalls = append(s.unlinkedCalls, objectId)
	if s.unlinkHook != nil {
		s.unlinkHook(s.registry)
	}
}
func (s *fakeSource) OlinkCollectProperties() map[string]any { return s.props }

func newTestNode(t *testing.T) (*Node, *[]string) {
	reg := NewRegistry()
	node := NewNode(reg, olink.FormatJSON)
	node.SetLogger(testlog.Start(t))
	var frames []string
	node.SetWriter(func(raw string) { frames = append(frames, raw) })
	return node, &frames
}

// Link against a registered source registers the node, calls
// OlinkLinked, then emits Init with the collected properties.
func TestHandleLinkRegistersAndEmitsInit(t *testing.T) {
	node, frames := newTestNode(t)
	src := &fakeSource{objectId: "sink1", props: map[string]any{"a": 1.0}}
	node.registry.AddSource(src)

	node.HandleLink("sink1")

	if len(src.linkedCalls) != 1 || src.linkedCalls[0].objectId != "sink1" || src.linkedCalls[0].node != node {
		t.Fatalf("unexpected OlinkLinked calls: %+v", src.linkedCalls)
	}
	want := []string{`[11,"sink1",{"a":1}]`}
	if !reflect.DeepEqual(*frames, want) {
		t.Fatalf("got %v, want %v", *frames, want)
	}
	nodes := node.registry.Nodes("sink1")
	if len(nodes) != 1 || nodes[0] != node {
		t.Fatalf("expected node in source's node-set, got %v", nodes)
	}
}

// Link against an unregistered object logs and emits nothing; the
// source never sees a callback.
func TestHandleLinkUnregisteredObjectDropsSilently(t *testing.T) {
	node, frames := newTestNode(t)
	node.HandleLink("ghost")
	if len(*frames) != 0 {
		t.Fatalf("expected no frames, got %v", *frames)
	}
}

// Unlink removes the node from the node-set and calls OlinkUnlinked
// exactly once.
func TestHandleUnlinkCallsSourceAndRemovesFromSet(t *testing.T) {
	node, _ := newTestNode(t)
	src := &fakeSource{objectId: "sink1", props: map[string]any{}}
	node.registry.AddSource(src)
	node.HandleLink("sink1")

	node.HandleUnlink("sink1")

	if len(src.unlinkedCalls) != 1 || src.unlinkedCalls[0] != "sink1" {
		t.Fatalf("unexpected OlinkUnlinked calls: %v", src.unlinkedCalls)
	}
	if nodes := node.registry.Nodes("sink1"); len(nodes) != 0 {
		t.Fatalf("expected node removed from node-set, got %v", nodes)
	}
}

// OlinkUnlinked must observe the node still present in the node-set:
// the source is notified before the node is removed, not after.
func TestHandleUnlinkNotifiesSourceBeforeRemovingFromSet(t *testing.T) {
	node, _ := newTestNode(t)
	src := &fakeSource{objectId: "sink1", props: map[string]any{}, registry: node.registry}
	var nodesDuringCallback int
	src.unlinkHook = func(registry *Registry) {
		nodesDuringCallback = len(registry.Nodes("sink1"))
	}
	node.registry.AddSource(src)
	node.HandleLink("sink1")

	node.HandleUnlink("sink1")

	if nodesDuringCallback != 1 {
		t.Fatalf("expected the node still present in the node-set during OlinkUnlinked, got %d", nodesDuringCallback)
	}
	if nodes := node.registry.Nodes("sink1"); len(nodes) != 0 {
		t.Fatalf("expected node removed from node-set after HandleUnlink returns, got %v", nodes)
	}
}

// Close must notify each source before removing this node from its
// node-set, same as HandleUnlink.
func TestCloseNotifiesSourceBeforeRemovingFromSet(t *testing.T) {
	node, _ := newTestNode(t)
	src := &fakeSource{objectId: "sink1", props: map[string]any{}, registry: node.registry}
	var nodesDuringCallback int
	src.unlinkHook = func(registry *Registry) {
		nodesDuringCallback = len(registry.Nodes("sink1"))
	}
	node.registry.AddSource(src)
	node.HandleLink("sink1")

	node.Close()

	if nodesDuringCallback != 1 {
		t.Fatalf("expected the node still present in the node-set during OlinkUnlinked, got %d", nodesDuringCallback)
	}
}

// SetProperty routes to the source backing the addressed object.
func TestHandleSetPropertyRoutesToSource(t *testing.T) {
	node, _ := newTestNode(t)
	src := &fakeSource{objectId: "sink1"}
	node.registry.AddSource(src)

	node.HandleSetProperty("sink1.exampleProprety", 42.0)

	if len(src.setPropCalls) != 1 || src.setPropCalls[0].propertyId != "sink1.exampleProprety" || src.setPropCalls[0].value != 42.0 {
		t.Fatalf("unexpected SetProperty calls: %+v", src.setPropCalls)
	}
}

// Invoke against a live source replies with the source's return value.
func TestHandleInvokeEmitsInvokeReply(t *testing.T) {
	node, frames := newTestNode(t)
	src := &fakeSource{objectId: "sink1"}
	src.invokeFn = func(methodId string, args []any) any { return "ok" }
	node.registry.AddSource(src)

	node.HandleInvoke(7, "sink1.exampleMethod", []any{"x"})

	want := []string{`[31,7,"sink1.exampleMethod","ok"]`}
	if !reflect.DeepEqual(*frames, want) {
		t.Fatalf("got %v, want %v", *frames, want)
	}
}

// Invoke against an unregistered object emits an Error instead of an
// InvokeReply.
func TestHandleInvokeUnregisteredObjectEmitsError(t *testing.T) {
	node, frames := newTestNode(t)
	node.HandleInvoke(3, "ghost.m", nil)
	if len(*frames) != 1 {
		t.Fatalf("expected one frame, got %v", *frames)
	}
	msg, err := olink.Decode((*frames)[0], olink.FormatJSON)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	kind, _ := msg.KindOf()
	if kind != olink.KindError {
		t.Fatalf("expected an Error frame, got kind %s", kind)
	}
}

// A panicking Source.OlinkInvoke is recovered and converted to an
// Error message; it never crosses the node's public boundary.
func TestHandleInvokePanicConvertsToError(t *testing.T) {
	node, frames := newTestNode(t)
	src := &fakeSource{objectId: "sink1"}
	src.invokeFn = func(methodId string, args []any) any {
		panic(fmt.Errorf("boom"))
	}
	node.registry.AddSource(src)

	node.HandleInvoke(9, "sink1.exampleMethod", nil)

	if len(*frames) != 1 {
		t.Fatalf("expected exactly one frame, got %v", *frames)
	}
	msg, err := olink.Decode((*frames)[0], olink.FormatJSON)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	kind, _ := msg.KindOf()
	if kind != olink.KindError {
		t.Fatalf("expected an Error frame after panic, got kind %s", kind)
	}
}

// NotifyPropertyChange/NotifySignal emit the expected frames without
// touching the registry.
func TestNotifyPropertyChangeAndSignal(t *testing.T) {
	node, frames := newTestNode(t)
	node.NotifyPropertyChange("sink1.exampleProprety", 5.0)
	node.NotifySignal("sink1.exampleSingal", []any{"x"})

	want := []string{
		`[21,"sink1.exampleProprety",5]`,
		`[40,"sink1.exampleSingal",["x"]]`,
	}
	if !reflect.DeepEqual(*frames, want) {
		t.Fatalf("got %v, want %v", *frames, want)
	}
}

// Closing a node with multiple linked objects unlinks all of them and
// detaches from the registry.
func TestCloseUnlinksAllAndDetaches(t *testing.T) {
	node, _ := newTestNode(t)
	src1 := &fakeSource{objectId: "sink1", props: map[string]any{}}
	src2 := &fakeSource{objectId: "sink2", props: map[string]any{}}
	node.registry.AddSource(src1)
	node.registry.AddSource(src2)
	node.HandleLink("sink1")
	node.HandleLink("sink2")

	node.Close()

	if len(src1.unlinkedCalls) != 1 || len(src2.unlinkedCalls) != 1 {
		t.Fatalf("expected one unlink per source, got src1=%v src2=%v", src1.unlinkedCalls, src2.unlinkedCalls)
	}
	if nodes := node.registry.Nodes("sink1"); len(nodes) != 0 {
		t.Fatalf("expected node-set empty after close, got %v", nodes)
	}
}

// Multiple nodes may link against the same source concurrently; the
// node-set fans out to all of them.
func TestMultipleNodesLinkSameSource(t *testing.T) {
	reg := NewRegistry()
	src := &fakeSource{objectId: "sink1", props: map[string]any{}}
	reg.AddSource(src)

	n1 := NewNode(reg, olink.FormatJSON)
	n2 := NewNode(reg, olink.FormatJSON)
	n1.SetWriter(func(string) {})
	n2.SetWriter(func(string) {})

	n1.HandleLink("sink1")
	n2.HandleLink("sink1")

	nodes := reg.Nodes("sink1")
	if len(nodes) != 2 {
		t.Fatalf("expected two nodes linked, got %v", nodes)
	}
}

type countingMetrics struct {
	links, unlinks, invokes int
}

func (m *countingMetrics) IncLink(string)   { m.links++ }
func (m *countingMetrics) IncUnlink(string) { m.unlinks++ }
func (m *countingMetrics) IncInvoke(string) { m.invokes++ }

// SetMetrics wires inbound link/unlink/invoke counts into whatever
// NodeMetrics the caller installs.
func TestSetMetricsReportsInboundLinkUnlinkInvoke(t *testing.T) {
	node, _ := newTestNode(t)
	m := &countingMetrics{}
	node.SetMetrics(m)
	src := &fakeSource{objectId: "sink1", props: map[string]any{}}
	node.registry.AddSource(src)

	node.HandleLink("sink1")
	node.HandleInvoke(1, "sink1.m", nil)
	node.HandleUnlink("sink1")

	if m.links != 1 || m.invokes != 1 || m.unlinks != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
}
