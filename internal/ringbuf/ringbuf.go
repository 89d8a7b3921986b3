// Package ringbuf 提供固定容量、FIFO淘汰的环形缓冲。
// 不动态扩容：写满后继续写入会挤掉最旧的元素。
package ringbuf

import "sync"

// Ring 并发安全的定容环形缓冲
type Ring[T any] struct {
	mu   sync.Mutex
	buf  []T
	head int // 最旧元素下标
	size int
}

// New 创建容量为 capacity 的环形缓冲；capacity 必须为正
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("ringbuf: capacity must be positive")
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push 追加一个元素；缓冲已满时淘汰最旧的元素
func (r *Ring[T]) Push(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Snapshot 按插入顺序拷贝当前内容（旧→新）
func (r *Ring[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// Last 返回最新元素；缓冲为空时第二个返回值为 false
func (r *Ring[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.buf[(r.head+r.size-1)%len(r.buf)], true
}

// Len 当前元素个数
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap 容量
func (r *Ring[T]) Cap() int { return len(r.buf) }
