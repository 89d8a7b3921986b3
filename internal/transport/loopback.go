package transport

import "sync"

// Loopback 内存回环链路：Write 记录主机侧下行帧，FeedRead 注入设备侧上行
// 字节。供测试与 CLI 的 --fake 模式使用。
type Loopback struct {
	mu     sync.Mutex
	rx     []byte
	writes [][]byte
	closed bool

	// WriteErr 注入写失败（模拟链路故障）
	WriteErr error
}

// NewLoopback 创建回环链路
func NewLoopback() *Loopback { return &Loopback{} }

// Write 记录一次下行写入
func (l *Loopback) Write(p []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.WriteErr != nil {
		return l.WriteErr
	}
	dup := make([]byte, len(p))
	copy(dup, p)
	l.writes = append(l.writes, dup)
	return nil
}

// ReadAvailable 取走当前注入的全部上行字节
func (l *Loopback) ReadAvailable() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.rx) == 0 {
		return nil, nil
	}
	out := l.rx
	l.rx = nil
	return out, nil
}

// Close 关闭链路
func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// FeedRead 注入上行字节（追加到待读队列尾部）
func (l *Loopback) FeedRead(p []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rx = append(l.rx, p...)
}

// Writes 返回按顺序记录的全部下行帧
func (l *Loopback) Writes() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.writes))
	copy(out, l.writes)
	return out
}

// WriteCount 已记录的下行帧数
func (l *Loopback) WriteCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.writes)
}
