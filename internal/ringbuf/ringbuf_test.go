package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushWithinCapacity(t *testing.T) {
	r := New[int](5)
	for i := 1; i <= 3; i++ {
		r.Push(i)
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{1, 2, 3}, r.Snapshot())
}

func TestEvictionKeepsLastN(t *testing.T) {
	// 容量100写入105个：保留第6..105个，顺序不变
	r := New[int](100)
	for i := 1; i <= 105; i++ {
		r.Push(i)
	}
	got := r.Snapshot()
	require.Len(t, got, 100)
	assert.Equal(t, 6, got[0])
	assert.Equal(t, 105, got[99])
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1]+1, got[i])
	}
}

func TestCapacityOneAlwaysLatest(t *testing.T) {
	r := New[string](1)
	_, ok := r.Last()
	assert.False(t, ok)

	for _, v := range []string{"a", "b", "c"} {
		r.Push(v)
		last, ok := r.Last()
		require.True(t, ok)
		assert.Equal(t, v, last)
	}
	assert.Equal(t, []string{"c"}, r.Snapshot())
}

func TestSnapshotIsCopy(t *testing.T) {
	r := New[int](3)
	r.Push(1)
	snap := r.Snapshot()
	snap[0] = 99
	assert.Equal(t, []int{1}, r.Snapshot())
}

func TestNewPanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
}
