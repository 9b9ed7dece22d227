// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intervaldict

import "iter"

// treeEngine is an augmented red-black tree of ValueIntervals, ordered by
// lower bound, each node additionally tracking maxUpper: the largest
// upper bound reachable in its subtree. That augmentation lets Intersecting
// prune entire subtrees instead of visiting every node, the same trick
// interval_tree.h's IntervalNode/max_right_edge implements in C++.
//
// Nodes live in a flat arena addressed by int32 index rather than by
// pointer: parent/left/right are indices into treeEngine.nodes, and
// reclaimed indices are kept for reuse in the treeEngine.free slice.
// This sidesteps the ownership cycles a pointer-based red-black
// tree would otherwise create (a child pointing up at its parent while
// the parent points down at the child), per the arena-of-nodes design
// this module adopts for its only genuinely new data structure — the
// teacher has no tree of its own to generalize from.
type treeEngine[V comparable, D Domain[D]] struct {
	nodes   []treeNode[V, D]
	free    []int32
	root    int32
	count   int
}

const nilIdx int32 = -1

type treeColor uint8

const (
	red treeColor = iota
	black
)

type treeNode[V comparable, D Domain[D]] struct {
	value    V
	interval Interval[D]
	maxUpper Bound[D]
	parent   int32
	left     int32
	right    int32
	color    treeColor
	live     bool
}

func newTreeEngine[V comparable, D Domain[D]]() *treeEngine[V, D] {
	return &treeEngine[V, D]{root: nilIdx}
}

func (e *treeEngine[V, D]) alloc(value V, iv Interval[D]) int32 {
	n := treeNode[V, D]{value: value, interval: iv, maxUpper: iv.Upper, parent: nilIdx, left: nilIdx, right: nilIdx, color: red, live: true}
	if len(e.free) > 0 {
		idx := e.free[len(e.free)-1]
		e.free = e.free[:len(e.free)-1]
		e.nodes[idx] = n
		return idx
	}
	e.nodes = append(e.nodes, n)
	return int32(len(e.nodes) - 1)
}

func (e *treeEngine[V, D]) release(idx int32) {
	e.nodes[idx].live = false
	e.free = append(e.free, idx)
}

func (e *treeEngine[V, D]) node(idx int32) *treeNode[V, D] {
	if idx == nilIdx {
		return nil
	}
	return &e.nodes[idx]
}

// refreshUpward recomputes maxUpper at idx and at every ancestor up to
// the root. It does not stop early at a node whose maxUpper is unchanged:
// a freshly inserted node, or a successor spliced into a deleted node's
// place, can hold a correct-looking value while its ancestors are stale.
func (e *treeEngine[V, D]) refreshUpward(idx int32) {
	for idx != nilIdx {
		e.recomputeLocal(idx)
		idx = e.node(idx).parent
	}
}

func (e *treeEngine[V, D]) IsEmpty() bool {
	return e.count == 0
}

func (e *treeEngine[V, D]) Clone() engine[V, D] {
	clone := &treeEngine[V, D]{
		nodes: make([]treeNode[V, D], len(e.nodes)),
		free:  append([]int32(nil), e.free...),
		root:  e.root,
		count: e.count,
	}
	copy(clone.nodes, e.nodes)
	return clone
}

// --- Red-black insertion -----------------------------------------------

func (e *treeEngine[V, D]) Insert(value V, iv Interval[D]) {
	if iv.IsEmpty() {
		return
	}

	// Fold in any live same-value node that touches or overlaps iv,
	// hulling them together, per interval_tree.h's insert algorithm.
	// Repeat to a fixed point: hulling can bring the merged interval into
	// contact with a same-value node that didn't touch the original iv.
	hulled := iv
	for {
		idx := e.findMergeable(e.root, value, hulled)
		if idx == nilIdx {
			break
		}
		hulled = e.node(idx).interval.Hull(hulled)
		e.deleteNode(idx)
		e.count--
	}

	e.insertNode(value, hulled)
}

// findMergeable finds a live node holding value whose interval overlaps
// or touches iv, pruning a left subtree once its maxUpper can neither
// reach nor touch iv.Lower. The comparison is against complementOf(iv.Lower)
// rather than iv.Lower itself, so that a subtree ending at 5) is still
// searched for an iv starting at [5.
func (e *treeEngine[V, D]) findMergeable(idx int32, value V, iv Interval[D]) int32 {
	if idx == nilIdx {
		return nilIdx
	}
	n := e.node(idx)
	if l := e.node(n.left); l != nil && compareUpper(l.maxUpper, complementOf(iv.Lower)) >= 0 {
		if found := e.findMergeable(n.left, value, iv); found != nilIdx {
			return found
		}
	}
	if n.value == value && (n.interval.Overlaps(iv) || n.interval.Touches(iv)) {
		return idx
	}
	if n.right != nilIdx {
		if found := e.findMergeable(n.right, value, iv); found != nilIdx {
			return found
		}
	}
	return nilIdx
}

// insertNode performs a plain red-black insert of a single (value, iv)
// pair ordered by lower bound, with no merge logic of its own.
func (e *treeEngine[V, D]) insertNode(value V, iv Interval[D]) {
	idx := e.alloc(value, iv)
	e.count++

	if e.root == nilIdx {
		e.root = idx
		e.node(idx).color = black
		e.refreshUpward(idx)
		return
	}

	cur := e.root
	var parent int32 = nilIdx
	goLeft := false
	for cur != nilIdx {
		parent = cur
		n := e.node(cur)
		if compareLower(iv.Lower, n.interval.Lower) < 0 {
			goLeft = true
			cur = n.left
		} else {
			goLeft = false
			cur = n.right
		}
	}
	e.node(idx).parent = parent
	if goLeft {
		e.node(parent).left = idx
	} else {
		e.node(parent).right = idx
	}
	e.refreshUpward(idx)
	e.fixupInsert(idx)
}

func (e *treeEngine[V, D]) fixupInsert(z int32) {
	for e.node(z).parent != nilIdx && e.node(e.node(z).parent).color == red {
		parent := e.node(z).parent
		grand := e.node(parent).parent
		if grand == nilIdx {
			break
		}
		if parent == e.node(grand).left {
			uncle := e.node(grand).right
			if uncle != nilIdx && e.node(uncle).color == red {
				e.node(parent).color = black
				e.node(uncle).color = black
				e.node(grand).color = red
				z = grand
				continue
			}
			if z == e.node(parent).right {
				z = parent
				e.rotateLeft(z)
				parent = e.node(z).parent
				grand = e.node(parent).parent
			}
			e.node(parent).color = black
			e.node(grand).color = red
			e.rotateRight(grand)
		} else {
			uncle := e.node(grand).left
			if uncle != nilIdx && e.node(uncle).color == red {
				e.node(parent).color = black
				e.node(uncle).color = black
				e.node(grand).color = red
				z = grand
				continue
			}
			if z == e.node(parent).left {
				z = parent
				e.rotateRight(z)
				parent = e.node(z).parent
				grand = e.node(parent).parent
			}
			e.node(parent).color = black
			e.node(grand).color = red
			e.rotateLeft(grand)
		}
	}
	e.node(e.root).color = black
}

func (e *treeEngine[V, D]) rotateLeft(x int32) {
	y := e.node(x).right
	e.node(x).right = e.node(y).left
	if e.node(y).left != nilIdx {
		e.node(e.node(y).left).parent = x
	}
	e.node(y).parent = e.node(x).parent
	if e.node(x).parent == nilIdx {
		e.root = y
	} else if x == e.node(e.node(x).parent).left {
		e.node(e.node(x).parent).left = y
	} else {
		e.node(e.node(x).parent).right = y
	}
	e.node(y).left = x
	e.node(x).parent = y
	e.recomputeLocal(x)
	e.recomputeLocal(y)
}

func (e *treeEngine[V, D]) rotateRight(x int32) {
	y := e.node(x).left
	e.node(x).left = e.node(y).right
	if e.node(y).right != nilIdx {
		e.node(e.node(y).right).parent = x
	}
	e.node(y).parent = e.node(x).parent
	if e.node(x).parent == nilIdx {
		e.root = y
	} else if x == e.node(e.node(x).parent).right {
		e.node(e.node(x).parent).right = y
	} else {
		e.node(e.node(x).parent).left = y
	}
	e.node(y).right = x
	e.node(x).parent = y
	e.recomputeLocal(x)
	e.recomputeLocal(y)
}

// recomputeLocal recomputes a single node's maxUpper from its current
// children, used after rotations reparent subtrees (interval_tree.h's
// ExtendedNodeTraits hooks do the same on rotate).
func (e *treeEngine[V, D]) recomputeLocal(idx int32) {
	n := e.node(idx)
	m := n.interval.Upper
	if l := e.node(n.left); l != nil {
		m = maxBound(m, l.maxUpper, compareUpper[D])
	}
	if r := e.node(n.right); r != nil {
		m = maxBound(m, r.maxUpper, compareUpper[D])
	}
	n.maxUpper = m
}

// --- Erase ---------------------------------------------------------------

func (e *treeEngine[V, D]) Erase(value V, iv Interval[D], eraseAll bool) {
	if iv.IsEmpty() {
		return
	}
	for {
		idx := e.findErasable(e.root, value, iv, eraseAll)
		if idx == nilIdx {
			return
		}
		n := e.node(idx)
		remaining := e.splitOut(n.interval, iv)
		victimValue := n.value
		e.deleteNode(idx)
		e.count--
		for _, r := range remaining {
			e.Insert(victimValue, r)
		}
	}
}

// findErasable finds a node overlapping iv whose value matches (or any
// node, if eraseAll).
func (e *treeEngine[V, D]) findErasable(idx int32, value V, iv Interval[D], eraseAll bool) int32 {
	if idx == nilIdx {
		return nilIdx
	}
	n := e.node(idx)
	if l := e.node(n.left); l != nil && compareUpper(l.maxUpper, iv.Lower) >= 0 {
		if found := e.findErasable(n.left, value, iv, eraseAll); found != nilIdx {
			return found
		}
	}
	if _, ok := n.interval.Intersect(iv); ok && (eraseAll || n.value == value) {
		return idx
	}
	if n.right != nilIdx {
		if found := e.findErasable(n.right, value, iv, eraseAll); found != nilIdx {
			return found
		}
	}
	return nilIdx
}

// splitOut returns the pieces of host remaining after removing the
// overlap with iv (zero, one, or two pieces).
func (e *treeEngine[V, D]) splitOut(host, iv Interval[D]) []Interval[D] {
	var out []Interval[D]
	if left, ok := host.LeftSubtract(iv); ok {
		out = append(out, left)
	}
	if right, ok := host.RightSubtract(iv); ok {
		out = append(out, right)
	}
	return out
}

// deleteNode removes idx from the tree using the standard red-black
// delete (splice out a node with at most one child, or swap with its
// in-order successor first), re-running the upward maxUpper refresh and
// delete fixup afterward.
func (e *treeEngine[V, D]) deleteNode(z int32) {
	y := z
	yOriginalColor := e.node(y).color
	var x, xParent int32

	if e.node(z).left == nilIdx {
		x = e.node(z).right
		xParent = e.node(z).parent
		e.transplant(z, e.node(z).right)
	} else if e.node(z).right == nilIdx {
		x = e.node(z).left
		xParent = e.node(z).parent
		e.transplant(z, e.node(z).left)
	} else {
		y = e.minimum(e.node(z).right)
		yOriginalColor = e.node(y).color
		x = e.node(y).right
		if e.node(y).parent == z {
			xParent = y
		} else {
			xParent = e.node(y).parent
			e.transplant(y, e.node(y).right)
			e.node(y).right = e.node(z).right
			e.node(e.node(y).right).parent = y
		}
		e.transplant(z, y)
		e.node(y).left = e.node(z).left
		e.node(e.node(y).left).parent = y
		e.node(y).color = e.node(z).color
	}

	if xParent != nilIdx {
		e.recomputeLocal(xParent)
		e.refreshUpward(xParent)
	}

	if yOriginalColor == black {
		e.fixupDelete(x, xParent)
	}
	e.release(z)
}

func (e *treeEngine[V, D]) transplant(u, v int32) {
	up := e.node(u).parent
	if up == nilIdx {
		e.root = v
	} else if u == e.node(up).left {
		e.node(up).left = v
	} else {
		e.node(up).right = v
	}
	if v != nilIdx {
		e.node(v).parent = up
	}
}

func (e *treeEngine[V, D]) minimum(idx int32) int32 {
	for e.node(idx).left != nilIdx {
		idx = e.node(idx).left
	}
	return idx
}

func (e *treeEngine[V, D]) colorOf(idx int32) treeColor {
	if idx == nilIdx {
		return black
	}
	return e.node(idx).color
}

func (e *treeEngine[V, D]) fixupDelete(x, parent int32) {
	for x != e.root && e.colorOf(x) == black {
		if parent == nilIdx {
			break
		}
		if x == e.node(parent).left {
			w := e.node(parent).right
			if e.colorOf(w) == red {
				e.node(w).color = black
				e.node(parent).color = red
				e.rotateLeft(parent)
				w = e.node(parent).right
			}
			if e.colorOf(e.node(w).left) == black && e.colorOf(e.node(w).right) == black {
				e.node(w).color = red
				x = parent
				parent = e.node(x).parent
				continue
			}
			if e.colorOf(e.node(w).right) == black {
				if e.node(w).left != nilIdx {
					e.node(e.node(w).left).color = black
				}
				e.node(w).color = red
				e.rotateRight(w)
				w = e.node(parent).right
			}
			e.node(w).color = e.node(parent).color
			e.node(parent).color = black
			if e.node(w).right != nilIdx {
				e.node(e.node(w).right).color = black
			}
			e.rotateLeft(parent)
			x = e.root
		} else {
			w := e.node(parent).left
			if e.colorOf(w) == red {
				e.node(w).color = black
				e.node(parent).color = red
				e.rotateRight(parent)
				w = e.node(parent).left
			}
			if e.colorOf(e.node(w).right) == black && e.colorOf(e.node(w).left) == black {
				e.node(w).color = red
				x = parent
				parent = e.node(x).parent
				continue
			}
			if e.colorOf(e.node(w).left) == black {
				if e.node(w).right != nilIdx {
					e.node(e.node(w).right).color = black
				}
				e.node(w).color = red
				e.rotateLeft(w)
				w = e.node(parent).left
			}
			e.node(w).color = e.node(parent).color
			e.node(parent).color = black
			if e.node(w).left != nilIdx {
				e.node(e.node(w).left).color = black
			}
			e.rotateRight(parent)
			x = e.root
		}
	}
	if x != nilIdx {
		e.node(x).color = black
	}
}

// --- Queries ---------------------------------------------------------------

// ValueIntervals yields every stored node in lower-bound order via an
// in-order traversal.
func (e *treeEngine[V, D]) ValueIntervals() iter.Seq2[V, Interval[D]] {
	return func(yield func(V, Interval[D]) bool) {
		e.inorder(e.root, func(n *treeNode[V, D]) bool {
			return yield(n.value, n.interval)
		})
	}
}

func (e *treeEngine[V, D]) inorder(idx int32, visit func(*treeNode[V, D]) bool) bool {
	if idx == nilIdx {
		return true
	}
	if !e.inorder(e.node(idx).left, visit) {
		return false
	}
	if !visit(e.node(idx)) {
		return false
	}
	return e.inorder(e.node(idx).right, visit)
}

// Intersecting yields every stored (value, interval) pair overlapping
// query, pruning subtrees whose maxUpper cannot reach query's lower edge
// — the classic augmented-interval-tree search from interval_tree.h's
// query()/find_next_overlapping.
func (e *treeEngine[V, D]) Intersecting(query Interval[D]) iter.Seq2[V, Interval[D]] {
	return func(yield func(V, Interval[D]) bool) {
		e.search(e.root, query, func(n *treeNode[V, D]) bool {
			ov, ok := n.interval.Intersect(query)
			if !ok {
				return true
			}
			return yield(n.value, ov)
		})
	}
}

func (e *treeEngine[V, D]) search(idx int32, query Interval[D], visit func(*treeNode[V, D]) bool) bool {
	if idx == nilIdx {
		return true
	}
	n := e.node(idx)
	if compareUpper(n.maxUpper, query.Lower) < 0 {
		return true
	}
	if !e.search(n.left, query, visit) {
		return false
	}
	if n.interval.Overlaps(query) {
		if !visit(n) {
			return false
		}
	}
	if compareLower(query.Upper, n.interval.Lower) < 0 {
		return true
	}
	return e.search(n.right, query, visit)
}

func (e *treeEngine[V, D]) Gaps(query Interval[D]) iter.Seq[Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).Gaps(query)
}

func (e *treeEngine[V, D]) DisjointIntervals(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).DisjointIntervals(query)
}

func (e *treeEngine[V, D]) InitialValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).InitialValues(query)
}

func (e *treeEngine[V, D]) FinalValues(query Interval[D]) iter.Seq2[*valueSetSnapshot[V], Interval[D]] {
	return newNonDisjointAdaptor[V, D](e.Intersecting).FinalValues(query)
}

func (e *treeEngine[V, D]) MergedWith(other engine[V, D], query Interval[D]) engine[V, D] {
	result := e.Clone().(*treeEngine[V, D])
	for v, iv := range other.ValueIntervals() {
		if ov, ok := iv.Intersect(query); ok {
			result.Insert(v, ov)
		}
	}
	return result
}

func (e *treeEngine[V, D]) SubtractBy(other engine[V, D], query Interval[D]) engine[V, D] {
	result := e.Clone().(*treeEngine[V, D])
	for v, iv := range other.ValueIntervals() {
		if ov, ok := iv.Intersect(query); ok {
			result.Erase(v, ov, false)
		}
	}
	return result
}

var _ engine[int, OrderedDomain[int]] = (*treeEngine[int, OrderedDomain[int]])(nil)
