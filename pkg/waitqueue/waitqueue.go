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

// Package waitqueue provides a wait queue where waiters can be enqueued to
// be notified when an event of interest happens.
//
// Entries are linked into the queue intrusively, so registration and
// unregistration perform no allocations. The list underneath is
// unsynchronized; the queue wraps every operation in its own mutex, which is
// the intended way to share an intrusive list between goroutines.
package waitqueue

import (
	"sync"

	"gvisor.dev/ilist/pkg/ilist"
)

// Events is a bitmask of event classes a waiter can wait on.
type Events uint64

// Event classes.
const (
	EventReady Events = 1 << iota
	EventDone
	EventErr
)

// Entry represents a waiter enqueued in a Queue. It can be in at most one
// queue at a time.
//
// The zero value is ready for registration.
type Entry struct {
	// Context stores any state the waiter may wish to carry into the
	// notification callback.
	Context any

	// The following fields are protected by the queue mutex.
	callback func(*Entry)
	events   Events
	node     ilist.Node[Entry]
}

// NewChannelEntry returns an Entry whose callback does a non-blocking send
// on the returned channel. The channel has capacity one, so a notification
// is never lost but repeated notifications coalesce.
func NewChannelEntry() (*Entry, chan struct{}) {
	ch := make(chan struct{}, 1)
	e := &Entry{Context: ch}
	e.callback = func(*Entry) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return e, ch
}

// Queue is a wait queue. Waiters register entries with the event classes
// they care about; notifiers wake every entry whose classes intersect the
// notified set.
type Queue struct {
	mu   sync.Mutex
	list *ilist.List[Entry]
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		list: ilist.New(func(e *Entry) *ilist.Node[Entry] { return &e.node }),
	}
}

// Register enqueues e to be notified when any event in events happens.
// callback runs with the queue mutex held and must not call back into the
// queue. e must not be registered in any queue.
func (q *Queue) Register(e *Entry, events Events, callback func(*Entry)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e.events = events
	e.callback = callback
	q.list.Push(e)
}

// RegisterChannel is a shorthand for registering a channel entry with its
// prebuilt callback. e must come from NewChannelEntry; an entry without a
// callback would be enqueued but never woken, so registering one panics.
func (q *Queue) RegisterChannel(e *Entry, events Events) {
	if e.callback == nil {
		panic("waitqueue: RegisterChannel on an entry without a callback; use NewChannelEntry")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	e.events = events
	q.list.Push(e)
}

// Unregister removes e from the queue. Unregistering an entry that is not
// registered is a no-op.
func (q *Queue) Unregister(e *Entry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.Remove(e)
}

// Notify wakes all entries waiting on at least one event in events.
func (q *Queue) Notify(events Events) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for e := q.list.Front(); e != nil; e = q.list.Next(e) {
		if e.events&events != 0 && e.callback != nil {
			e.callback(e)
		}
	}
}

// Events returns the union of the event classes currently being waited on.
func (q *Queue) Events() Events {
	q.mu.Lock()
	defer q.mu.Unlock()
	var union Events
	for e := q.list.Front(); e != nil; e = q.list.Next(e) {
		union |= e.events
	}
	return union
}

// Empty returns true iff no entries are registered.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Empty()
}
