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

package ilist

import (
	"unsafe"
)

// The offset between a record and its embedded Node is fixed by T's layout,
// so it is derived once at list construction and every linked Node is mapped
// back to its record by plain address arithmetic. nodeOf and recordOf are the
// only two places that arithmetic happens; everything else in the package
// deals in records and Nodes.
//
// The round trip relies on records staying put while linked. Records handed
// to a List escape to the heap (the list retains interior pointers to their
// Nodes), and the heap does not move objects, so this holds for ordinary Go
// values without any action from the caller.

// offsetOf returns the byte offset of T's embedded Node, as located by the
// node projection. A throwaway value of T supplies a valid base address; only
// addresses are taken from it, its contents are never read.
func offsetOf[T any](node func(*T) *Node[T]) uintptr {
	var base T
	n := node(&base)
	baseAddr := uintptr(unsafe.Pointer(&base))
	nodeAddr := uintptr(unsafe.Pointer(n))
	// The address comparison comes before any subtraction: a stray node just
	// below the record would wrap the difference around and could sneak past
	// a check done purely in offset space.
	if nodeAddr < baseAddr || nodeAddr-baseAddr+unsafe.Sizeof(*n) > unsafe.Sizeof(base) {
		// The projection returned a Node outside the record, e.g. one
		// reached through a pointer field. An offset derived from it would
		// alias arbitrary memory on every round trip, so fail loudly now.
		panic("ilist: node projection does not resolve to a field embedded in the record")
	}
	return nodeAddr - baseAddr
}

// nodeOf returns the Node embedded in r.
//
//go:nosplit
func (l *List[T]) nodeOf(r *T) *Node[T] {
	return (*Node[T])(unsafe.Add(unsafe.Pointer(r), l.offset))
}

// recordOf returns the record containing n. n must be an embedded Node of a
// record previously passed to a list operation.
//
//go:nosplit
func (l *List[T]) recordOf(n *Node[T]) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(n), -int(l.offset)))
}
