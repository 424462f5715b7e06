package olink

// The builders below are pure constructors: each returns the canonical
// tuple shape for its Kind, and nothing else. They never touch a
// registry, a node, or the wire — see codec.go for serialization.

// NewLink builds a [10, objectId] message.
func NewLink(objectId string) Message {
	return Message{KindLink, objectId}
}

// NewUnlink builds a [12, objectId] message.
func NewUnlink(objectId string) Message {
	return Message{KindUnlink, objectId}
}

// NewInit builds a [11, objectId, propsObject] message.
func NewInit(objectId string, props map[string]any) Message {
	return Message{KindInit, objectId, props}
}

// NewSetProperty builds a [20, propertyId, value] message.
func NewSetProperty(propertyId string, value any) Message {
	return Message{KindSetProperty, propertyId, value}
}

// NewPropertyChange builds a [21, propertyId, value] message.
func NewPropertyChange(propertyId string, value any) Message {
	return Message{KindPropertyChange, propertyId, value}
}

// NewInvoke builds a [30, requestId, methodId, argsArray] message.
func NewInvoke(requestId int64, methodId string, args []any) Message {
	return Message{KindInvoke, requestId, methodId, args}
}

// NewInvokeReply builds a [31, requestId, methodId, returnValue] message.
func NewInvokeReply(requestId int64, methodId string, returnValue any) Message {
	return Message{KindInvokeReply, requestId, methodId, returnValue}
}

// NewSignal builds a [40, signalId, argsArray] message.
func NewSignal(signalId string, args []any) Message {
	return Message{KindSignal, signalId, args}
}

// NewError builds a [90, msgType, requestId, errorString] message.
func NewError(msgType Kind, requestId int64, errorString string) Message {
	return Message{KindError, int(msgType), requestId, errorString}
}
