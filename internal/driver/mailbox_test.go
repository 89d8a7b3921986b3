package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
)

func TestMailboxReplaceOnPut(t *testing.T) {
	m := newMailbox()
	old := sciencemode.Frame{0x01}
	fresh := sciencemode.Frame{0x02}
	m.Put(old)
	m.Put(fresh) // 未取走的旧帧被顶掉

	got, err := m.Take(realClock{}, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestMailboxTakeTimeout(t *testing.T) {
	m := newMailbox()
	_, err := m.Take(realClock{}, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestMailboxDrain(t *testing.T) {
	m := newMailbox()
	m.Put(sciencemode.Frame{0x01})
	m.Drain()
	_, err := m.Take(realClock{}, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestLevelEvent(t *testing.T) {
	e := newLevelEvent()
	assert.False(t, e.IsSet())
	assert.ErrorIs(t, e.Wait(realClock{}, 5*time.Millisecond), ErrTimeout)

	e.Set()
	e.Set() // 幂等
	assert.True(t, e.IsSet())
	// 电平触发：置位期间任意次等待都放行
	assert.NoError(t, e.Wait(realClock{}, 5*time.Millisecond))
	assert.NoError(t, e.Wait(realClock{}, 5*time.Millisecond))

	e.Clear()
	assert.False(t, e.IsSet())
	assert.ErrorIs(t, e.Wait(realClock{}, 5*time.Millisecond), ErrTimeout)
}

func TestLevelEventWakesWaiter(t *testing.T) {
	e := newLevelEvent()
	done := make(chan error, 1)
	go func() { done <- e.Wait(realClock{}, time.Second) }()
	time.Sleep(10 * time.Millisecond)
	e.Set()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiter not released")
	}
}
