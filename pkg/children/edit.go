package children

import (
	"sync"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Edit is a vector list whose structure can be edited from outside the
// current tree pass. External code obtains a [Handle], clones and holds
// it for as long as it likes, and queues structural requests on it; the
// list drains the queue and applies everything atomically at the start
// of its next update pass, reporting each change to the observer with
// correct before/after index bookkeeping.
//
// Batched edits of different kinds apply in a fixed order regardless of
// the order the requests were issued in: retain, then insert, then
// push, then move-by-index, then move-by-identity. A queued clear
// dominates everything: the list is dropped and rebuilt, and all other
// queued operations apply to the now-empty list.
type Edit struct {
	Base
	vec Vec
	q   *editQueue
}

// NewEdit creates an editable list owning the given nodes.
func NewEdit(nodes ...node.Node) *Edit {
	e := &Edit{
		vec: Vec{nodes: nodes},
		q:   &editQueue{alive: true},
	}
	e.SetSelf(e)
	return e
}

// Handle returns a cloneable handle onto the edit queue. Handles stay
// valid forever: once the owning list is gone their requests are
// silently dropped.
func (e *Edit) Handle() Handle {
	return Handle{q: e.q}
}

// Len returns the number of owned nodes.
func (e *Edit) Len() int {
	return e.vec.Len()
}

// Visit invokes fn on the node at index. Out of bounds panics.
func (e *Edit) Visit(index int, fn func(n node.Node)) {
	e.vec.Visit(index, fn)
}

// ForEach visits every node in index order.
func (e *Edit) ForEach(fn VisitFunc) {
	e.vec.ForEach(fn)
}

// ForEachRange visits the nodes in [lo, hi) in index order.
func (e *Edit) ForEachRange(lo, hi int, fn VisitFunc) {
	e.vec.ForEachRange(lo, hi, fn)
}

// Drain moves every owned node into buf, emptying the list.
func (e *Edit) Drain(buf *[]node.Node) {
	e.vec.Drain(buf)
}

// InitAll attaches every node and binds the edit queue to the ambient
// widget and scheduler, so handle requests can wake the right owner.
func (e *Edit) InitAll(cx *tree.Context) {
	e.q.bind(cx.Widget(), cx.Scheduler())
	e.Base.InitAll(cx)
}

// DeinitAll detaches every node and kills the queue: the owning list is
// going away, so all further handle requests are dropped.
func (e *Edit) DeinitAll(cx *tree.Context) {
	e.Base.DeinitAll(cx)
	e.q.kill()
}

// UpdateAll first drains and applies the queued edits, then updates
// every remaining node.
func (e *Edit) UpdateAll(cx *tree.Context, obs Observer) {
	e.apply(cx, obs)
	e.Base.UpdateAll(cx, obs)
}

func (e *Edit) apply(cx *tree.Context, obs Observer) {
	ops, ok := e.q.drain()
	if !ok {
		return
	}

	if ops.clear {
		for _, n := range e.vec.clear() {
			n.Deinit(cx)
		}
		obs.Reset()
		cx.MarkNeedsInfo()
	}

	for _, pred := range ops.retain {
		i := 0
		for i < e.vec.Len() {
			var keep bool
			var victim node.Node
			e.vec.Visit(i, func(n node.Node) {
				keep = pred(n)
				victim = n
			})
			if keep {
				i++
				continue
			}
			e.vec.removeAt(i)
			victim.Deinit(cx)
			obs.Removed(i)
		}
	}

	for _, ins := range ops.insert {
		at := e.vec.insert(ins.index, ins.node)
		ins.node.Init(cx)
		obs.Inserted(at)
		cx.MarkNeedsInfo()
	}

	for _, n := range ops.push {
		e.vec.push(n)
		n.Init(cx)
		obs.Inserted(e.vec.Len() - 1)
		cx.MarkNeedsInfo()
	}

	for _, mv := range ops.moveIndex {
		e.applyMove(mv.from, mv.to, obs)
	}

	for _, mv := range ops.moveID {
		cur := e.indexOf(mv.id)
		if cur < 0 {
			continue
		}
		e.applyMove(cur, mv.resolve(cur, e.vec.Len()), obs)
	}
}

// applyMove relocates one node. An out-of-range destination appends at
// the end; an out-of-range source and a same-place move are no-ops.
func (e *Edit) applyMove(from, to int, obs Observer) {
	n := e.vec.Len()
	if from < 0 || from >= n {
		return
	}
	if to < 0 || to >= n {
		to = n - 1
	}
	if from == to {
		return
	}
	e.vec.move(from, to)
	obs.Moved(from, to)
}

// indexOf locates a node by identity, or -1 when no node matches.
func (e *Edit) indexOf(id tree.WidgetID) int {
	found := -1
	e.vec.ForEach(func(i int, n node.Node) {
		if found >= 0 {
			return
		}
		if ident, ok := n.(node.Identified); ok && ident.Identity() == id {
			found = i
		}
	})
	return found
}

// RenderAll records every node in index order; pending edits are not
// visible until the next update pass applies them.
func (e *Edit) RenderAll(cx *tree.Context, fb *frame.FrameBuilder) {
	e.Base.RenderAll(cx, fb)
}

// MoveResolver maps a node's current index and the list length to its
// destination index for a move-by-identity request.
type MoveResolver func(current, length int) int

type insertOp struct {
	index int
	node  node.Node
}

type moveIndexOp struct {
	from int
	to   int
}

type moveIDOp struct {
	id      tree.WidgetID
	resolve MoveResolver
}

// editOps is the pending-operation record drained once per update pass.
type editOps struct {
	clear     bool
	retain    []func(n node.Node) bool
	insert    []insertOp
	push      []node.Node
	moveIndex []moveIndexOp
	moveID    []moveIDOp
}

func (o *editOps) empty() bool {
	return !o.clear && len(o.retain) == 0 && len(o.insert) == 0 &&
		len(o.push) == 0 && len(o.moveIndex) == 0 && len(o.moveID) == 0
}

// editQueue is the shared, lock-guarded mailbox between handles and the
// owning list. The lock is held only for a single enqueue or a single
// drain-and-replace, never across a tree pass.
type editQueue struct {
	mu     sync.Mutex
	alive  bool
	target tree.WidgetID
	sched  tree.Scheduler
	ops    editOps
}

func (q *editQueue) bind(target tree.WidgetID, sched tree.Scheduler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.target = target
	q.sched = sched
}

func (q *editQueue) kill() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.alive = false
	q.ops = editOps{}
}

// drain atomically swaps the pending operations out. ok is false when
// there was nothing to apply.
func (q *editQueue) drain() (ops editOps, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ops.empty() {
		return editOps{}, false
	}
	ops = q.ops
	q.ops = editOps{}
	return ops, true
}

// enqueue appends one request under the lock and wakes the target
// widget. Requests against a dead or unbound queue are dropped.
func (q *editQueue) enqueue(fn func(ops *editOps)) {
	if q == nil {
		return
	}
	q.mu.Lock()
	if !q.alive {
		q.mu.Unlock()
		return
	}
	fn(&q.ops)
	sched, target := q.sched, q.target
	q.mu.Unlock()
	if sched != nil {
		sched.Wake(target)
	}
}

// Handle queues structural edits against an [Edit] list from anywhere:
// any goroutine, inside or outside a tree pass, before or after the
// owning list's last pass. Copying a Handle clones it.
type Handle struct {
	q *editQueue
}

// Insert queues a node insertion at the given index. An out-of-range
// index appends at the end.
func (h Handle) Insert(index int, n node.Node) {
	h.q.enqueue(func(ops *editOps) {
		ops.insert = append(ops.insert, insertOp{index: index, node: n})
	})
}

// Push queues a node append.
func (h Handle) Push(n node.Node) {
	h.q.enqueue(func(ops *editOps) {
		ops.push = append(ops.push, n)
	})
}

// Retain queues a filter: nodes the predicate rejects are deinitialized
// and removed.
func (h Handle) Retain(pred func(n node.Node) bool) {
	h.q.enqueue(func(ops *editOps) {
		ops.retain = append(ops.retain, pred)
	})
}

// Remove queues removal of the node with the given identity. Sugar for
// Retain with an identity predicate; nodes without an identity are
// kept.
func (h Handle) Remove(id tree.WidgetID) {
	h.Retain(func(n node.Node) bool {
		ident, ok := n.(node.Identified)
		return !ok || ident.Identity() != id
	})
}

// MoveIndex queues a move of the node at from to occupy to.
func (h Handle) MoveIndex(from, to int) {
	h.q.enqueue(func(ops *editOps) {
		ops.moveIndex = append(ops.moveIndex, moveIndexOp{from: from, to: to})
	})
}

// MoveID queues a move of the node with the given identity. When the
// batch applies, resolve receives the node's current index and the list
// length and returns the destination; an out-of-range destination
// appends at the end. An identity that matches nothing is a no-op.
func (h Handle) MoveID(id tree.WidgetID, resolve MoveResolver) {
	h.q.enqueue(func(ops *editOps) {
		ops.moveID = append(ops.moveID, moveIDOp{id: id, resolve: resolve})
	})
}

// Clear queues a full reset: every current node is deinitialized and
// dropped, and all other operations queued in the same batch apply to
// the emptied list.
func (h Handle) Clear() {
	h.q.enqueue(func(ops *editOps) {
		ops.clear = true
	})
}
