package remote

// Source is the server-side object backing an object-id. The
// application's domain objects implement it to accept invocations and
// property writes, and to push property changes and signals through
// the Node(s) currently linked against them.
type Source interface {
	// OlinkObjectName returns the object-id this source backs. It is
	// read once, when the source is added to a Registry.
	OlinkObjectName() string

	// OlinkInvoke executes methodId with args and returns the value to
	// carry back in the InvokeReply. A panic here is recovered by Node
	// and converted into an Error message rather than propagated.
	OlinkInvoke(methodId string, args []any) any

	// OlinkSetProperty applies a client-requested property write. If
	// the value actually changes, the source is expected (but not
	// required) to follow up by calling NotifyPropertyChange on the
	// node(s) linked against it.
	OlinkSetProperty(propertyId string, value any)

	// OlinkLinked is called once per successful Link, after node has
	// been added to this source's node-set but before Init is sent.
	OlinkLinked(objectId string, node *Node)

	// OlinkUnlinked is called once per Unlink (or node teardown),
	// before node is removed from this source's node-set.
	OlinkUnlinked(objectId string)

	// OlinkCollectProperties returns the property snapshot sent as the
	// payload of the Init message following a Link.
	OlinkCollectProperties() map[string]any
}
