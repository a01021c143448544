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

// Package deadline provides a deadline-ordered timer queue.
//
// Timers embed their own list linkage, so scheduling and cancellation do not
// allocate and cancellation is O(1). Scheduling walks the queue to keep it
// sorted by deadline, which suits workloads with few pending timers or
// mostly-increasing deadlines; for large timer populations a heap or wheel
// is the better structure.
//
// The queue is not thread-safe.
package deadline

import (
	"time"

	"gvisor.dev/ilist/pkg/ilist"
)

// Timer is a single pending deadline.
type Timer struct {
	// When is the deadline after which the timer is due.
	When time.Time

	// Run is invoked by Queue.Expire when the timer is due. May be nil.
	Run func()

	node ilist.Node[Timer]
}

// Queue holds pending timers in deadline order. Timers with equal deadlines
// expire in the order they were scheduled.
type Queue struct {
	list *ilist.List[Timer]
}

// Pending returns true if t is scheduled in q. A sole scheduled timer has no
// list neighbors, so linkage alone cannot answer this; the head check covers
// that case.
func (q *Queue) Pending(t *Timer) bool {
	return t.node.Linked() || q.list.Front() == t
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		list: ilist.NewOrdered(
			func(t *Timer) *ilist.Node[Timer] { return &t.node },
			func(a, b *Timer) int { return a.When.Compare(b.When) },
		),
	}
}

// Schedule adds t to the queue. t must not already be scheduled.
func (q *Queue) Schedule(t *Timer) {
	q.list.Insert(t)
}

// Cancel removes t from the queue. Canceling a timer that is not scheduled
// is a no-op.
func (q *Queue) Cancel(t *Timer) {
	q.list.Remove(t)
}

// Next returns the earliest pending deadline. The second return value is
// false if the queue is empty.
func (q *Queue) Next() (time.Time, bool) {
	t := q.list.Front()
	if t == nil {
		return time.Time{}, false
	}
	return t.When, true
}

// Expire removes every timer due at or before now, invokes its Run callback
// if set, and returns the expired timers in deadline order.
func (q *Queue) Expire(now time.Time) []*Timer {
	var due []*Timer
	for {
		t := q.list.Front()
		if t == nil || t.When.After(now) {
			return due
		}
		q.list.Pop()
		if t.Run != nil {
			t.Run()
		}
		due = append(due, t)
	}
}

// ScheduledAt returns the first pending timer with exactly the given
// deadline, or nil.
func (q *Queue) ScheduledAt(when time.Time) *Timer {
	return q.list.FindEqual(&Timer{When: when})
}

// Len returns the number of pending timers.
func (q *Queue) Len() int {
	return q.list.Len()
}
