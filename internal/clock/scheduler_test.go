package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSchedulerRunsWhenDue(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	ran := false
	task := s.After(time.Second, func() { ran = true })

	assert.Equal(t, 0, s.RunDue())
	assert.True(t, task.Pending())

	clk.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, s.RunDue())

	clk.Advance(time.Millisecond)
	assert.Equal(t, 1, s.RunDue())
	assert.True(t, ran)
	assert.False(t, task.Pending())
	assert.False(t, task.Cancel(), "finished task cannot be cancelled")
}

func TestSchedulerOrdersByDueTime(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	var order []int
	s.After(2*time.Second, func() { order = append(order, 2) })
	s.After(time.Second, func() { order = append(order, 1) })
	s.After(time.Second, func() { order = append(order, 11) })

	clk.Advance(3 * time.Second)
	s.RunDue()
	assert.Equal(t, []int{1, 11, 2}, order)
}

func TestCancelledTaskNeverRuns(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	ran := false
	task := s.After(time.Second, func() { ran = true })
	assert.True(t, task.Cancel())

	clk.Advance(time.Minute)
	s.RunDue()
	assert.False(t, ran)
	assert.Equal(t, 0, s.Pending())
}

func TestStopSuppressesPendingAndFutureTasks(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	ran := 0
	s.After(time.Second, func() { ran++ })
	s.Stop()

	late := s.After(0, func() { ran++ })
	assert.False(t, late.Pending())

	clk.Advance(time.Minute)
	assert.Equal(t, 0, s.RunDue())
	assert.Equal(t, 0, ran)
}

func TestTaskCanCancelSibling(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	var second *Task
	secondRan := false
	s.After(time.Second, func() { second.Cancel() })
	second = s.After(time.Second, func() { secondRan = true })

	clk.Advance(time.Second)
	assert.Equal(t, 1, s.RunDue())
	assert.False(t, secondRan)
}

func TestTaskScheduledDuringRunWaitsForNextPump(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	nested := false
	s.After(0, func() {
		s.After(0, func() { nested = true })
	})

	assert.Equal(t, 1, s.RunDue())
	assert.False(t, nested)
	assert.Equal(t, 1, s.RunDue())
	assert.True(t, nested)
}

func TestSchedulerFollowsClockJumps(t *testing.T) {
	clk := NewManual(epoch)
	s := NewScheduler(clk)

	ran := 0
	s.After(time.Minute, func() { ran++ })

	clk.Set(epoch.Add(30 * time.Second))
	assert.Equal(t, 0, s.RunDue())

	clk.Set(epoch.Add(time.Hour))
	assert.Equal(t, 1, s.RunDue())
	assert.Equal(t, 1, ran)
	assert.Zero(t, s.Pending())
}
