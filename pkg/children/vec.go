package children

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/node"
)

// Vec is the dense base collection: a thin owner of a node slice. Every
// other collection bottoms out here, directly or through composition.
//
// Vec's mutators are plain slice surgery with no observer notifications
// and no lifecycle calls; [Edit] layers the edit-queue protocol on top.
type Vec struct {
	Base
	nodes []node.Node
}

// NewVec creates a vector list owning the given nodes.
func NewVec(nodes ...node.Node) *Vec {
	v := &Vec{nodes: nodes}
	v.SetSelf(v)
	return v
}

// Len returns the number of owned nodes.
func (v *Vec) Len() int {
	return len(v.nodes)
}

// Visit invokes fn on the node at index. Out of bounds panics.
func (v *Vec) Visit(index int, fn func(n node.Node)) {
	if index < 0 || index >= len(v.nodes) {
		panic(fmt.Sprintf("children: visit index %d out of range (len %d)", index, len(v.nodes)))
	}
	fn(v.nodes[index])
}

// ForEach visits every node in index order.
func (v *Vec) ForEach(fn VisitFunc) {
	for i, n := range v.nodes {
		fn(i, n)
	}
}

// ForEachRange visits the nodes in [lo, hi) in index order.
func (v *Vec) ForEachRange(lo, hi int, fn VisitFunc) {
	for i := lo; i < hi; i++ {
		fn(i, v.nodes[i])
	}
}

// Drain moves every owned node into buf, emptying the list.
func (v *Vec) Drain(buf *[]node.Node) {
	*buf = append(*buf, v.nodes...)
	v.nodes = nil
}

// push appends a node.
func (v *Vec) push(n node.Node) {
	v.nodes = append(v.nodes, n)
}

// insert places a node at index, clamping out-of-range indices to
// append. Returns the index actually used.
func (v *Vec) insert(index int, n node.Node) int {
	if index < 0 || index > len(v.nodes) {
		index = len(v.nodes)
	}
	v.nodes = append(v.nodes, nil)
	copy(v.nodes[index+1:], v.nodes[index:])
	v.nodes[index] = n
	return index
}

// removeAt removes and returns the node at index.
func (v *Vec) removeAt(index int) node.Node {
	n := v.nodes[index]
	copy(v.nodes[index:], v.nodes[index+1:])
	v.nodes[len(v.nodes)-1] = nil
	v.nodes = v.nodes[:len(v.nodes)-1]
	return n
}

// move relocates the node at from to occupy to. Both indices must be in
// range; callers clamp first.
func (v *Vec) move(from, to int) {
	n := v.removeAt(from)
	v.insert(to, n)
}

// clear drops every node, returning the previous backing for the caller
// to deinitialize.
func (v *Vec) clear() []node.Node {
	old := v.nodes
	v.nodes = nil
	return old
}
