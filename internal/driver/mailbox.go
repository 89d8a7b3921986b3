package driver

import (
	"time"

	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
)

// mailbox 单槽信箱：后台读取循环向等待中的调用方递交一帧。
// 覆盖写入（新帧顶掉未取走的旧帧），只有分发器这一个生产者。
type mailbox struct {
	ch chan sciencemode.Frame
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan sciencemode.Frame, 1)}
}

// Put 存入一帧；槽位已占用时先弹出旧帧
func (m *mailbox) Put(f sciencemode.Frame) {
	for {
		select {
		case m.ch <- f:
			return
		default:
			select {
			case <-m.ch:
			default:
			}
		}
	}
}

// Take 阻塞取帧，超时返回 ErrTimeout
func (m *mailbox) Take(clock Clock, timeout time.Duration) (sciencemode.Frame, error) {
	select {
	case f := <-m.ch:
		return f, nil
	case <-clock.After(timeout):
		return nil, ErrTimeout
	}
}

// Drain 清空槽位（发送前复位，避免拿到上一条命令的应答）
func (m *mailbox) Drain() {
	select {
	case <-m.ch:
	default:
	}
}
