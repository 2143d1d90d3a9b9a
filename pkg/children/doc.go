// Package children implements the retained-mode child-collection engine:
// the uniform contract every multi-child panel uses to hold and drive
// its children.
//
// Six concrete collections implement the [List] contract:
//
//   - [Vec]: dense slice backing, the base case
//   - [Chain]: two lists composed end to end
//   - [Multi]: any number of lists composed end to end
//   - [Sorted]: a lazily re-sorted read view over an inner list
//   - [Panel]: an inner list plus per-item layout metadata and z-order
//   - [Edit]: a vector list whose structure can be edited from outside
//     the tree pass through a cloneable [Handle]
//
// Every collection exposes the same seven tree operations addressed by a
// stable 0-based index, and every composite makes its own parallel or
// sequential choice per phase by consulting the pass context fresh.
//
// Errors here are of exactly two kinds. Programmer errors (visiting out
// of bounds, re-entering a locked panel slot, reconstructing a panel
// from mismatched parts) panic immediately. Everything else is policy:
// out-of-range edit indices clamp to append, requests on dead handles
// are dropped, identity lookups that find nothing do nothing.
package children
