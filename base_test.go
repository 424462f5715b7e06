package olink

import "testing"

type recordingListener struct {
	inits     []string
	propChngs []string
	signals   []string
	replies   []string
	errs      []string
}

func (l *recordingListener) HandleInit(objectId string, props map[string]any) {
	l.inits = append(l.inits, objectId)
}
func (l *recordingListener) HandlePropertyChange(propertyId string, value any) {
	l.propChngs = append(l.propChngs, propertyId)
}
func (l *recordingListener) HandleSignal(signalId string, args []any) {
	l.signals = append(l.signals, signalId)
}
func (l *recordingListener) HandleInvokeReply(requestId int64, methodId string, value any) {
	l.replies = append(l.replies, methodId)
}
func (l *recordingListener) HandleError(msgType Kind, requestId int64, errorString string) {
	l.errs = append(l.errs, errorString)
}

func TestBaseNodeDispatchesToListener(t *testing.T) {
	l := &recordingListener{}
	b := NewBaseNode(FormatJSON, l)

	b.HandleMessage(`[11,"tests.sink2",{"a":1}]`)
	b.HandleMessage(`[21,"tests.sink2.p",5]`)
	b.HandleMessage(`[40,"tests.sink2.sig",[1,2]]`)
	b.HandleMessage(`[31,7,"tests.sink1.m",9]`)
	b.HandleMessage(`[90,30,7,"boom"]`)

	if len(l.inits) != 1 || l.inits[0] != "tests.sink2" {
		t.Fatalf("unexpected inits: %v", l.inits)
	}
	if len(l.propChngs) != 1 || l.propChngs[0] != "tests.sink2.p" {
		t.Fatalf("unexpected propChngs: %v", l.propChngs)
	}
	if len(l.signals) != 1 || l.signals[0] != "tests.sink2.sig" {
		t.Fatalf("unexpected signals: %v", l.signals)
	}
	if len(l.replies) != 1 || l.replies[0] != "tests.sink1.m" {
		t.Fatalf("unexpected replies: %v", l.replies)
	}
	if len(l.errs) != 1 || l.errs[0] != "boom" {
		t.Fatalf("unexpected errs: %v", l.errs)
	}
}

func TestBaseNodeUnhandledKindIsDroppedNotPanicked(t *testing.T) {
	l := &recordingListener{}
	b := NewBaseNode(FormatJSON, l)
	var logged []string
	b.SetLogger(func(level Level, msg string) {
		logged = append(logged, msg)
	})

	// Link is a remote-side kind; recordingListener implements none of
	// the remote handlers, so this should log and drop, not panic.
	b.HandleMessage(`[10,"tests.sink1"]`)

	if len(logged) != 1 {
		t.Fatalf("expected exactly one log line, got %v", logged)
	}
}

func TestEmitWriteWithNoWriterLogsWarningAndDoesNotPanic(t *testing.T) {
	b := NewBaseNode(FormatJSON, &recordingListener{})
	var got []string
	b.SetLogger(func(level Level, msg string) {
		if level == LevelWarning {
			got = append(got, msg)
		}
	})
	b.EmitWrite(NewLink("tests.sink1"))
	if len(got) != 1 || got[0] != ErrNoWriter.Error() {
		t.Fatalf("expected one no-writer warning, got %v", got)
	}
}

func TestEmitWriteWithWriterEncodesToWire(t *testing.T) {
	b := NewBaseNode(FormatJSON, &recordingListener{})
	var frames []string
	b.SetWriter(func(raw string) { frames = append(frames, raw) })
	b.EmitWrite(NewLink("tests.sink1"))
	if len(frames) != 1 || frames[0] != `[10,"tests.sink1"]` {
		t.Fatalf("unexpected frames: %v", frames)
	}
}

type countingMetrics struct {
	decodeErrors int
	noWriter     int
}

func (m *countingMetrics) IncDecodeError() { m.decodeErrors++ }
func (m *countingMetrics) IncNoWriter()    { m.noWriter++ }

func TestMetricsHookCountsNoWriterAndDecodeErrors(t *testing.T) {
	b := NewBaseNode(FormatJSON, &recordingListener{})
	m := &countingMetrics{}
	b.SetMetrics(m)

	b.EmitWrite(NewLink("tests.sink1"))
	b.HandleMessage(`not json`)
	b.HandleMessage(`[10,"tests.sink1"]`)

	if m.noWriter != 1 {
		t.Fatalf("expected one no-writer count, got %d", m.noWriter)
	}
	if m.decodeErrors != 2 {
		t.Fatalf("expected two decode-error counts (bad json + unhandled kind), got %d", m.decodeErrors)
	}
}
