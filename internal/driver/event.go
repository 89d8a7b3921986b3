package driver

import (
	"sync"
	"time"
)

// levelEvent 电平触发的完成事件：Set 后所有等待方放行，直到 Clear 复位。
// 每次发送前复位、命令完成帧到达时置位。
type levelEvent struct {
	mu sync.Mutex
	c  chan struct{} // 关闭表示已置位
}

func newLevelEvent() *levelEvent {
	return &levelEvent{c: make(chan struct{})}
}

// Set 置位；幂等
func (e *levelEvent) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.c:
	default:
		close(e.c)
	}
}

// Clear 复位
func (e *levelEvent) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.c:
		e.c = make(chan struct{})
	default:
	}
}

// IsSet 当前是否置位
func (e *levelEvent) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.c:
		return true
	default:
		return false
	}
}

// Wait 阻塞直到置位或超时
func (e *levelEvent) Wait(clock Clock, timeout time.Duration) error {
	e.mu.Lock()
	c := e.c
	e.mu.Unlock()
	select {
	case <-c:
		return nil
	case <-clock.After(timeout):
		return ErrTimeout
	}
}
