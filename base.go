package olink

import (
	"fmt"
	"sync"
)

// Level is a log severity, mirroring the four levels the embedding
// application's logger is expected to support.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// WriteFunc hands an encoded frame to the transport. LogFunc reports a
// levelled message; both are optional and supplied by the embedding
// application.
type WriteFunc func(raw string)
type LogFunc func(level Level, message string)

// MetricsHook is the narrow interface BaseNode uses to report decode
// failures and no-writer drops to an external metrics recorder.
// internal/metrics.Recorder satisfies it structurally; BaseNode only
// depends on this interface so the core package never imports the
// metrics package.
type MetricsHook interface {
	IncDecodeError()
	IncNoWriter()
}

// Listener handler interfaces. A concrete node (ClientNode or
// RemoteNode) implements the subset relevant to its role; BaseNode
// dispatches handleMessage by type-asserting its registered listener
// against each of these in turn, the Go analogue of a virtual method
// table.
type initHandler interface {
	HandleInit(objectId string, props map[string]any)
}
type propertyChangeHandler interface {
	HandlePropertyChange(propertyId string, value any)
}
type signalHandler interface {
	HandleSignal(signalId string, args []any)
}
type invokeReplyHandler interface {
	HandleInvokeReply(requestId int64, methodId string, value any)
}
type errorHandler interface {
	HandleError(msgType Kind, requestId int64, errorString string)
}
type linkHandler interface {
	HandleLink(objectId string)
}
type unlinkHandler interface {
	HandleUnlink(objectId string)
}
type setPropertyHandler interface {
	HandleSetProperty(propertyId string, value any)
}
type invokeHandler interface {
	HandleInvoke(requestId int64, methodId string, args []any)
}

// BaseNode is the plumbing shared by ClientNode and RemoteNode: the
// write/log callbacks, outbound encode-and-write, and inbound
// decode-and-dispatch. It never holds protocol state itself (no
// pending-invokes map, no registry) — that lives in the concrete node.
type BaseNode struct {
	mu       sync.RWMutex
	writer   WriteFunc
	logger   LogFunc
	format   Format
	listener any
	metrics  MetricsHook
}

// NewBaseNode constructs plumbing for a node communicating in format.
// listener is the concrete node embedding this BaseNode; it is stored
// untyped and re-asserted per message kind in HandleMessage.
func NewBaseNode(format Format, listener any) *BaseNode {
	return &BaseNode{format: format, listener: listener}
}

// SetWriter installs the outbound write callback. A nil writer is
// valid and means "no transport attached yet" — outbound messages are
// then dropped with a Warning, never buffered.
func (b *BaseNode) SetWriter(w WriteFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writer = w
}

// SetLogger installs the log callback.
func (b *BaseNode) SetLogger(l LogFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = l
}

// SetMetrics installs an optional metrics hook. A nil hook (the
// default) disables metrics entirely; it has no effect on protocol
// behavior either way.
func (b *BaseNode) SetMetrics(m MetricsHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = m
}

// Logf reports a levelled, printf-formatted message through the log
// callback. It is a no-op if no logger is set.
func (b *BaseNode) Logf(level Level, format string, args ...any) {
	b.mu.RLock()
	logger := b.logger
	b.mu.RUnlock()
	if logger == nil {
		return
	}
	logger(level, fmt.Sprintf(format, args...))
}

// EmitWrite encodes m and hands it to the write callback. If no
// writer is set, it logs ErrNoWriter at Warning and drops the
// message — the node's own state (e.g. a registry binding) still
// changes as if the write had succeeded.
func (b *BaseNode) EmitWrite(m Message) {
	b.mu.RLock()
	writer := b.writer
	format := b.format
	metrics := b.metrics
	b.mu.RUnlock()
	if writer == nil {
		b.Logf(LevelWarning, "%s", ErrNoWriter)
		if metrics != nil {
			metrics.IncNoWriter()
		}
		return
	}
	raw, err := Encode(m, format)
	if err != nil {
		b.Logf(LevelError, "encode failed: %v", err)
		return
	}
	writer(raw)
}

// HandleMessage parses raw and dispatches it to the listener method
// matching its Kind. A decode failure (malformed JSON, unknown kind,
// wrong arity) is logged at Error and the frame is dropped; the
// connection is never closed by the core. A kind the concrete node
// does not implement a handler for is likewise logged at Error and
// dropped.
func (b *BaseNode) HandleMessage(raw string) {
	b.mu.RLock()
	format := b.format
	listener := b.listener
	metrics := b.metrics
	b.mu.RUnlock()

	fail := func(format string, args ...any) {
		b.Logf(LevelError, format, args...)
		if metrics != nil {
			metrics.IncDecodeError()
		}
	}

	msg, err := Decode(raw, format)
	if err != nil {
		fail("decode failed: %v", err)
		return
	}
	kind, err := msg.KindOf()
	if err != nil {
		fail("%v", err)
		return
	}

	switch kind {
	case KindInit:
		objectId, props, ok := parseInit(msg)
		if !ok {
			fail("malformed Init message: %v", raw)
			return
		}
		if h, ok := listener.(initHandler); ok {
			h.HandleInit(objectId, props)
			return
		}
	case KindPropertyChange:
		propertyId, value, ok := parsePropertyChange(msg)
		if !ok {
			fail("malformed PropertyChange message: %v", raw)
			return
		}
		if h, ok := listener.(propertyChangeHandler); ok {
			h.HandlePropertyChange(propertyId, value)
			return
		}
	case KindSignal:
		signalId, args, ok := parseSignal(msg)
		if !ok {
			fail("malformed Signal message: %v", raw)
			return
		}
		if h, ok := listener.(signalHandler); ok {
			h.HandleSignal(signalId, args)
			return
		}
	case KindInvokeReply:
		requestId, methodId, value, ok := parseInvokeReply(msg)
		if !ok {
			fail("malformed InvokeReply message: %v", raw)
			return
		}
		if h, ok := listener.(invokeReplyHandler); ok {
			h.HandleInvokeReply(requestId, methodId, value)
			return
		}
	case KindError:
		msgType, requestId, errorString, ok := parseError(msg)
		if !ok {
			fail("malformed Error message: %v", raw)
			return
		}
		if h, ok := listener.(errorHandler); ok {
			h.HandleError(msgType, requestId, errorString)
			return
		}
	case KindLink:
		objectId, ok := parseObjectIdOnly(msg)
		if !ok {
			fail("malformed Link message: %v", raw)
			return
		}
		if h, ok := listener.(linkHandler); ok {
			h.HandleLink(objectId)
			return
		}
	case KindUnlink:
		objectId, ok := parseObjectIdOnly(msg)
		if !ok {
			fail("malformed Unlink message: %v", raw)
			return
		}
		if h, ok := listener.(unlinkHandler); ok {
			h.HandleUnlink(objectId)
			return
		}
	case KindSetProperty:
		propertyId, value, ok := parsePropertyChange(msg)
		if !ok {
			fail("malformed SetProperty message: %v", raw)
			return
		}
		if h, ok := listener.(setPropertyHandler); ok {
			h.HandleSetProperty(propertyId, value)
			return
		}
	case KindInvoke:
		requestId, methodId, args, ok := parseInvoke(msg)
		if !ok {
			fail("malformed Invoke message: %v", raw)
			return
		}
		if h, ok := listener.(invokeHandler); ok {
			h.HandleInvoke(requestId, methodId, args)
			return
		}
	}
	fail("unhandled message kind %s, dropping", kind)
}
