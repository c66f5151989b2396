package pad

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(0, 30*time.Millisecond, func() { got = append(got, "c") })
	s.After(0, 10*time.Millisecond, func() { got = append(got, "a") })
	s.After(0, 10*time.Millisecond, func() { got = append(got, "b") })

	s.Advance(5 * time.Millisecond)
	assert.Empty(t, got)
	assert.Equal(t, 3, s.Pending())

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	ran := false
	task := s.After(0, time.Millisecond, func() { ran = true })
	task.Cancel()
	task.Cancel()
	s.Advance(time.Second)
	assert.False(t, ran)
	assert.Equal(t, 0, s.Pending())

	var nilTask *Task
	nilTask.Cancel()
}

func TestSchedulerNestedScheduling(t *testing.T) {
	var s Scheduler
	var got []int
	s.After(0, time.Millisecond, func() {
		got = append(got, 1)
		s.After(time.Millisecond, 0, func() { got = append(got, 2) })
		s.After(time.Millisecond, time.Hour, func() { got = append(got, 3) })
	})
	s.Advance(2 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 1, s.Pending())
}

func TestSchedulerClose(t *testing.T) {
	var s Scheduler
	ran := 0
	s.After(0, time.Millisecond, func() { ran++ })
	s.Close()
	s.After(0, time.Millisecond, func() { ran++ })
	s.Advance(time.Second)
	assert.Equal(t, 0, ran)
	assert.Equal(t, 0, s.Pending())
}
