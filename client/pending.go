package client

import "sync"

// ReplyFunc is invoked once, after the pending-invokes lock has been
// released, when the matching InvokeReply for an Invoke arrives.
type ReplyFunc func(methodId string, returnValue any)

type pendingInvoke struct {
	methodId string
	reply    ReplyFunc
}

// pendingInvokes is the requestId -> pending-invoke directory of a
// single Node. The map-plus-mutex shape, and the discipline of
// removing an entry under the lock then invoking its callback outside
// it, is modeled on the teacher's EventOutbox (a stable-id-keyed map
// of items awaiting acknowledgment).
type pendingInvokes struct {
	mu    sync.Mutex
	items map[int64]pendingInvoke
}

func newPendingInvokes() *pendingInvokes {
	return &pendingInvokes{items: make(map[int64]pendingInvoke)}
}

// add records a pending invocation. Fire-and-forget invokes (reply ==
// nil) never reach this method — the caller skips recording them.
func (p *pendingInvokes) add(requestId int64, methodId string, reply ReplyFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[requestId] = pendingInvoke{methodId: methodId, reply: reply}
}

// resolve removes and returns the entry for requestId, if any. The
// caller is expected to invoke the returned reply callback itself,
// outside of any lock resolve might have held.
func (p *pendingInvokes) resolve(requestId int64) (pendingInvoke, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	item, ok := p.items[requestId]
	if ok {
		delete(p.items, requestId)
	}
	return item, ok
}

// discardAll drops every pending entry without invoking any callback,
// used on node teardown.
func (p *pendingInvokes) discardAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = make(map[int64]pendingInvoke)
}

func (p *pendingInvokes) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
