// Copyright 2026 The gVisor Authors.
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

// Package ilist provides the implementation of intrusive linked lists.
//
// An intrusive list stores its linkage inside the linked records themselves:
// each record type embeds a Node, and a List splices records in and out by
// rewriting the embedded Nodes. Entries can be added to or removed from the
// list in O(1) time and with no additional memory allocations.
//
// A record type participates by embedding a Node and handing New a projection
// from the record to that field:
//
//	type task struct {
//		id   int
//		node ilist.Node[task]
//	}
//
//	l := ilist.New(func(t *task) *ilist.Node[task] { return &t.node })
//	l.Push(&t)
//
// To iterate over a list (where l is a *List[T]):
//
//	for r := l.Front(); r != nil; r = l.Next(r) {
//		// do something with r.
//	}
//
// The list never owns the records. Callers must keep a record alive and in
// place for as long as it is linked; freeing or reusing a linked record's
// storage corrupts the list. A record may be a member of at most one list per
// embedded Node; membership in several lists at once requires one Node field
// per list.
//
// Lists are not thread-safe. Callers that share a list across goroutines must
// provide their own synchronization, typically a mutex around every list
// operation.
package ilist

// A Node is the linkage embedded in each record of a list. The zero value is
// an unlinked Node ready for use.
//
// Nodes are spliced in and out exclusively by List operations; there is no
// way to rewrite a Node's neighbors directly.
type Node[T any] struct {
	next *Node[T]
	prev *Node[T]
}

// Linked returns true if n has a neighbor on either side.
//
// The sole element of a list has no neighbors and reports false; check
// List.Front if that case matters.
func (n *Node[T]) Linked() bool {
	return n.next != nil || n.prev != nil
}

// Compare is a three-way ordering over records. It returns a negative value
// if a sorts before b, zero if they are equal, and a positive value if a
// sorts after b.
type Compare[T any] func(a, b *T) int

// List is an intrusive doubly-linked list over records of type T.
//
// Lists are created with New or NewOrdered; the zero value has no record
// layout attached and is not usable.
type List[T any] struct {
	head   *Node[T]
	tail   *Node[T]
	length int
	offset uintptr
	cmp    Compare[T]
}

// New returns an empty unordered list. node must return the address of the
// Node embedded in the given record; it is invoked once against a placeholder
// record to derive the field's offset within T. Insert on an unordered list
// appends, and FindEqual always fails.
func New[T any](node func(*T) *Node[T]) *List[T] {
	return &List[T]{offset: offsetOf(node)}
}

// NewOrdered returns an empty list ordered by cmp. Insert keeps the list
// sorted and FindEqual searches it.
func NewOrdered[T any](node func(*T) *Node[T], cmp Compare[T]) *List[T] {
	return &List[T]{offset: offsetOf(node), cmp: cmp}
}

// Empty returns true iff the list is empty.
func (l *List[T]) Empty() bool {
	return l.head == nil
}

// Len returns the number of records in the list.
func (l *List[T]) Len() int {
	return l.length
}

// Front returns the first record of list l or nil.
func (l *List[T]) Front() *T {
	if l.head == nil {
		return nil
	}
	return l.recordOf(l.head)
}

// Back returns the last record of list l or nil.
func (l *List[T]) Back() *T {
	if l.tail == nil {
		return nil
	}
	return l.recordOf(l.tail)
}

// Next returns the record that follows r in the list, or nil if r is the
// last. r must be linked in l.
func (l *List[T]) Next(r *T) *T {
	n := l.nodeOf(r).next
	if n == nil {
		return nil
	}
	return l.recordOf(n)
}

// Prev returns the record that precedes r in the list, or nil if r is the
// first. r must be linked in l.
func (l *List[T]) Prev(r *T) *T {
	n := l.nodeOf(r).prev
	if n == nil {
		return nil
	}
	return l.recordOf(n)
}

// Push appends r at the back of the list. r must not already be linked.
func (l *List[T]) Push(r *T) {
	n := l.nodeOf(r)
	n.next = nil
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.length++
}

// PushFront inserts r at the front of the list. r must not already be linked.
func (l *List[T]) PushFront(r *T) {
	n := l.nodeOf(r)
	n.next = l.head
	n.prev = nil
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.length++
}

// Pop removes and returns the first record of the list, or nil if the list
// is empty. The returned record is unlinked.
func (l *List[T]) Pop() *T {
	n := l.head
	if n == nil {
		return nil
	}
	l.head = n.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}
	n.next = nil
	n.prev = nil
	l.length--
	return l.recordOf(n)
}

// Insert adds r to the list. Without a comparator it appends, like Push.
// With a comparator it splices r in before the first record that sorts
// strictly after it, so the list stays sorted and records with equal keys
// keep their insertion order.
func (l *List[T]) Insert(r *T) {
	if l.cmp == nil {
		l.Push(r)
		return
	}
	// Appending covers the empty list and any record sorting at or after the
	// current tail; it also bounds the walk below, which is then guaranteed
	// to hit a strictly greater record before running off the end.
	if l.tail == nil || l.cmp(r, l.recordOf(l.tail)) >= 0 {
		l.Push(r)
		return
	}
	e := l.head
	for l.cmp(l.recordOf(e), r) <= 0 {
		e = e.next
	}
	l.insertBefore(e, l.nodeOf(r))
}

// insertBefore splices n in immediately before a, which must be linked in l.
func (l *List[T]) insertBefore(a, n *Node[T]) {
	n.next = a
	n.prev = a.prev
	if a.prev != nil {
		a.prev.next = n
	} else {
		l.head = n
	}
	a.prev = n
	l.length++
}

// Remove detaches r from the list in O(1) and resets its linkage. Removing a
// record that was already removed (or never linked) is a no-op. Removing a
// record that is linked in a different list corrupts that list; the list
// cannot detect this.
func (l *List[T]) Remove(r *T) {
	n := l.nodeOf(r)
	if n.next == nil && n.prev == nil && l.head != n {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.next = nil
	n.prev = nil
	l.length--
}

// FindEqual returns the first record that compares equal to target under the
// list's comparator, or nil if there is none. Lists built without a
// comparator always return nil.
func (l *List[T]) FindEqual(target *T) *T {
	if l.cmp == nil {
		return nil
	}
	for n := l.head; n != nil; n = n.next {
		r := l.recordOf(n)
		if l.cmp(r, target) == 0 {
			return r
		}
	}
	return nil
}

// Reset resets list l to the empty state. The records themselves are not
// touched and keep whatever linkage they had; use Pop or Remove to unlink
// records individually.
func (l *List[T]) Reset() {
	l.head = nil
	l.tail = nil
	l.length = 0
}
