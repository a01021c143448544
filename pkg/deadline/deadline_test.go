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

package deadline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gvisor.dev/ilist/pkg/deadline"
)

var base = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return base.Add(d) }

func TestExpireInDeadlineOrder(t *testing.T) {
	q := deadline.New()

	late := &deadline.Timer{When: at(3 * time.Second)}
	early := &deadline.Timer{When: at(1 * time.Second)}
	mid := &deadline.Timer{When: at(2 * time.Second)}
	q.Schedule(late)
	q.Schedule(early)
	q.Schedule(mid)

	require.Equal(t, 3, q.Len())

	next, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, early.When, next)

	due := q.Expire(at(2 * time.Second))
	require.Equal(t, []*deadline.Timer{early, mid}, due)
	assert.Equal(t, 1, q.Len())
	assert.False(t, q.Pending(early))
	assert.True(t, q.Pending(late))

	due = q.Expire(at(10 * time.Second))
	require.Equal(t, []*deadline.Timer{late}, due)
	assert.Equal(t, 0, q.Len())

	_, ok = q.Next()
	assert.False(t, ok)
}

func TestExpireNothingDue(t *testing.T) {
	q := deadline.New()
	q.Schedule(&deadline.Timer{When: at(time.Minute)})

	assert.Empty(t, q.Expire(at(time.Second)))
	assert.Equal(t, 1, q.Len())
}

func TestEqualDeadlinesExpireInScheduleOrder(t *testing.T) {
	q := deadline.New()

	var order []string
	mk := func(name string) *deadline.Timer {
		return &deadline.Timer{
			When: at(time.Second),
			Run:  func() { order = append(order, name) },
		}
	}
	q.Schedule(mk("first"))
	q.Schedule(mk("second"))
	q.Schedule(mk("third"))

	q.Expire(at(time.Second))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestCancel(t *testing.T) {
	q := deadline.New()

	ran := false
	victim := &deadline.Timer{When: at(time.Second), Run: func() { ran = true }}
	keeper := &deadline.Timer{When: at(2 * time.Second)}
	q.Schedule(victim)
	q.Schedule(keeper)

	q.Cancel(victim)
	assert.False(t, q.Pending(victim))
	assert.Equal(t, 1, q.Len())

	// A second cancel must not disturb the remaining timer.
	q.Cancel(victim)
	assert.Equal(t, 1, q.Len())

	due := q.Expire(at(time.Hour))
	require.Equal(t, []*deadline.Timer{keeper}, due)
	assert.False(t, ran)
}

func TestPendingSoleTimer(t *testing.T) {
	q := deadline.New()

	// A sole scheduled timer has nil neighbors on both sides, exactly like
	// an unscheduled one; Pending must still tell them apart.
	tm := &deadline.Timer{When: at(time.Second)}
	assert.False(t, q.Pending(tm))

	q.Schedule(tm)
	assert.True(t, q.Pending(tm))

	q.Cancel(tm)
	assert.False(t, q.Pending(tm))

	q.Schedule(tm)
	q.Expire(at(time.Minute))
	assert.False(t, q.Pending(tm))
}

func TestScheduledAt(t *testing.T) {
	q := deadline.New()

	tm := &deadline.Timer{When: at(5 * time.Second)}
	q.Schedule(tm)

	assert.Same(t, tm, q.ScheduledAt(at(5*time.Second)))
	assert.Nil(t, q.ScheduledAt(at(6*time.Second)))

	q.Cancel(tm)
	assert.Nil(t, q.ScheduledAt(at(5*time.Second)))
}
