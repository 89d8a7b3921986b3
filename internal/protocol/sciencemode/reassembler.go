package sciencemode

import (
	"context"
	"fmt"
	"time"
)

// Split 从一段以 StopByte 结尾的累积缓冲中切出候选帧。
// 定位第一个 StartByte 并丢弃其前的杂散字节，然后按每个 StopByte（含）切片，
// 直到缓冲耗尽。本层只做标记扫描，CRC校验由 Verify 负责。
func Split(buf []byte) ([]Frame, error) {
	start := -1
	for i, b := range buf {
		if b == StartByte {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: no start marker in %d bytes", ErrMalformedFrame, len(buf))
	}
	rest := buf[start:]
	var frames []Frame
	for len(rest) > 0 {
		stop := -1
		for i, b := range rest {
			if b == StopByte {
				stop = i
				break
			}
		}
		if stop < 0 {
			return frames, fmt.Errorf("%w: trailing bytes without stop marker", ErrMalformedFrame)
		}
		frames = append(frames, Frame(rest[:stop+1]))
		rest = rest[stop+1:]
	}
	return frames, nil
}

// ReadFunc 从传输层取当前可读字节；无数据时返回空切片而非阻塞到有数据
type ReadFunc func() ([]byte, error)

// Reassembler 轮询式组帧器：持续累积传输层字节，直到“一次读取为空”
// 且缓冲以 StopByte 结尾，再整体切帧。协议不带长度前缀，只能依赖
// 起止标记加空闲判定；空闲轮询间隔显式可调。
type Reassembler struct {
	read ReadFunc
	poll time.Duration
}

// NewReassembler 创建组帧器；poll 为读空后的轮询间隔
func NewReassembler(read ReadFunc, poll time.Duration) *Reassembler {
	if poll <= 0 {
		poll = 5 * time.Millisecond
	}
	return &Reassembler{read: read, poll: poll}
}

// ReadFrames 阻塞直到凑齐至少一批完整帧或 ctx 结束，返回按到达顺序排列的候选帧。
// 缓冲不超过8字节的批次视为不可用并整体丢弃（返回空列表），与设备侧最小
// 应答帧长的约定一致。
func (r *Reassembler) ReadFrames(ctx context.Context) ([]Frame, error) {
	var buf []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunk, err := r.read()
		if err != nil {
			return nil, fmt.Errorf("transport read: %w", err)
		}
		if len(chunk) > 0 {
			buf = append(buf, chunk...)
			continue
		}
		if len(buf) > 0 && buf[len(buf)-1] == StopByte {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.poll):
		}
	}
	if len(buf) <= minFrameBytes {
		return nil, nil
	}
	return Split(buf)
}
