// Package client implements the client side of the object-link
// protocol: a ClientNode that sends Link/Unlink/Invoke/SetProperty
// requests and routes inbound Init/PropertyChange/Signal/InvokeReply/
// Error messages to the Sink registered for the addressed object.
//
// A Registry is shared by every ClientNode on one side of a transport;
// it is the objectId -> (sink, linked node) directory described by the
// protocol's data model.
package client
