// Package driver 实现与 Rehastim 的会话层：序号与链路状态管理、
// 同步的“发送并等应答”语义、初始化握手以及后台循环的编排。
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/taoyao-code/rehastim/internal/config"
	"github.com/taoyao-code/rehastim/internal/metrics"
	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
	"github.com/taoyao-code/rehastim/internal/ringbuf"
	"github.com/taoyao-code/rehastim/internal/transport"
)

// Driver Rehastim 会话控制器。
// 最多三个执行流共享状态：调用方、看门狗循环、（Motomed 模式下的）读取循环。
// 写路径由 writeMu 串行化，信箱与环形缓冲各自带同步，等待点一律带超时。
type Driver struct {
	cfg   config.DriverConfig
	tr    transport.Transport
	log   *zap.Logger
	m     *metrics.DriverMetrics
	clock Clock
	reasm *sciencemode.Reassembler

	// writeMu 串行化帧发送及其记账（序号、时间戳、发送历史）
	writeMu  sync.Mutex
	seq      byte
	lastSend time.Time
	lastSent []byte

	connMu    sync.Mutex
	connected bool
	cancelRun context.CancelFunc
	wg        sync.WaitGroup

	ackBox  *mailbox
	initBox *mailbox
	done    *levelEvent

	actualValues *ringbuf.Ring[sciencemode.ActualValuesSample]
	phaseResults *ringbuf.Ring[sciencemode.PhaseResultSample]

	// errLimit 限制后台循环内部错误的日志频率，设备异常刷屏时不淹没日志
	errLimit *rate.Limiter
}

// Option 构造选项
type Option func(*Driver)

// WithClock 注入时钟（测试用）
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// New 创建驱动。logger/metrics 传 nil 时使用空实现。
func New(cfg config.DriverConfig, tr transport.Transport, logger *zap.Logger, m *metrics.DriverMetrics, opts ...Option) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.Nop()
	}
	if cfg.WatchdogInterval <= 0 {
		cfg.WatchdogInterval = 500 * time.Millisecond
	}
	if cfg.LivenessWindow <= 0 {
		cfg.LivenessWindow = 1200 * time.Millisecond
	}
	if cfg.AckTimeout <= 0 {
		cfg.AckTimeout = 2 * time.Second
	}
	if cfg.ReaderPoll <= 0 {
		cfg.ReaderPoll = 50 * time.Millisecond
	}
	if cfg.IdlePoll <= 0 {
		cfg.IdlePoll = 5 * time.Millisecond
	}
	if cfg.ActualValuesCapacity <= 0 {
		cfg.ActualValuesCapacity = 100
	}
	if cfg.PhaseResultCapacity <= 0 {
		cfg.PhaseResultCapacity = 1
	}

	d := &Driver{
		cfg:          cfg,
		tr:           tr,
		log:          logger.With(zap.String("session", uuid.NewString())),
		m:            m,
		clock:        realClock{},
		ackBox:       newMailbox(),
		initBox:      newMailbox(),
		done:         newLevelEvent(),
		actualValues: ringbuf.New[sciencemode.ActualValuesSample](cfg.ActualValuesCapacity),
		phaseResults: ringbuf.New[sciencemode.PhaseResultSample](cfg.PhaseResultCapacity),
		errLimit:     rate.NewLimiter(rate.Every(time.Second), 5),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reasm = sciencemode.NewReassembler(tr.ReadAvailable, cfg.IdlePoll)
	return d
}

// Connect 发送初始化确认帧、标记链路已建立，并启动看门狗循环
// （Motomed 模式下再启动后台读取循环）。
func (d *Driver) Connect() error {
	d.connMu.Lock()
	defer d.connMu.Unlock()
	if d.connected {
		return ErrAlreadyConnected
	}
	// InitAck 携带版本字节0
	if err := d.writeFrame(sciencemode.CmdInitAck, []byte{0}); err != nil {
		return err
	}
	d.connected = true
	d.done.Set()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancelRun = cancel
	d.wg.Add(1)
	go d.watchdogLoop(ctx)
	if d.cfg.Motomed {
		d.wg.Add(1)
		go d.readerLoop(ctx)
	}
	d.log.Info("link established", zap.Bool("motomed", d.cfg.Motomed))
	return nil
}

// Disconnect 标记链路断开并汇合两个后台循环。
// 存活窗口超限可能已先行摘掉连接标记，此时仍需回收后台循环。
func (d *Driver) Disconnect() error {
	d.connMu.Lock()
	wasConnected := d.connected
	d.connected = false
	cancel := d.cancelRun
	d.cancelRun = nil
	d.connMu.Unlock()

	if cancel == nil && !wasConnected {
		return ErrNotConnected
	}
	if cancel != nil {
		cancel()
	}
	d.wg.Wait()
	d.log.Info("link closed")
	return nil
}

// IsConnected 链路是否存活：已建链且距上次发送不超过存活窗口；
// 窗口超限时顺带摘除连接标记。
func (d *Driver) IsConnected() bool {
	d.connMu.Lock()
	defer d.connMu.Unlock()
	if !d.connected {
		return false
	}
	if d.clock.Now().Sub(d.lastSendTime()) > d.cfg.LivenessWindow {
		d.connected = false
		return false
	}
	return true
}

// Send 以当前序号编码并发送一帧，然后阻塞等待对应的应答帧。
// Motomed 模式下应答由后台循环投递到信箱；否则同步轮询传输层，
// 取第一批非空帧中的最后一帧作为应答（同批更早的帧会被丢弃，
// 沿用设备侧的既有约定）。
func (d *Driver) Send(cmd sciencemode.Command, payload []byte) (sciencemode.Frame, error) {
	if !d.IsConnected() {
		return nil, ErrNotConnected
	}
	// 发送前复位：避免拿到上一条命令的残留应答/完成事件
	d.done.Clear()
	d.ackBox.Drain()
	if err := d.writeFrame(cmd, payload); err != nil {
		return nil, err
	}
	if d.cfg.Motomed {
		f, err := d.ackBox.Take(d.clock, d.cfg.AckTimeout)
		if err != nil {
			d.m.AckTimeouts.Inc()
			return nil, fmt.Errorf("await ack for %s: %w", cmd, err)
		}
		return f, nil
	}
	return d.pollAck(cmd)
}

// pollAck 无 Motomed 会话时的同步应答检索
func (d *Driver) pollAck(cmd sciencemode.Command) (sciencemode.Frame, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.AckTimeout)
	defer cancel()
	for {
		frames, err := d.reasm.ReadFrames(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				d.m.AckTimeouts.Inc()
				return nil, fmt.Errorf("await ack for %s: %w", cmd, ErrTimeout)
			}
			return nil, err
		}
		if len(frames) == 0 {
			continue
		}
		f := frames[len(frames)-1]
		if err := sciencemode.Verify(f); err != nil {
			d.countVerifyFailure(err)
			return nil, err
		}
		d.m.RxTotal.WithLabelValues("ok").Inc()
		if c, err := f.Command(); err == nil {
			d.log.Debug("ack received", zap.Stringer("cmd", c))
		}
		return f, nil
	}
}

// WaitInitAck 等待设备发来的初始化帧（仅 Motomed 模式下由读取循环投递）
func (d *Driver) WaitInitAck(timeout time.Duration) (sciencemode.Frame, error) {
	return d.initBox.Take(d.clock, timeout)
}

// WaitCommandDone 等待命令完成事件
func (d *Driver) WaitCommandDone(timeout time.Duration) error {
	return d.done.Wait(d.clock, timeout)
}

// ActualValues 实时遥测快照（旧→新）
func (d *Driver) ActualValues() []sciencemode.ActualValuesSample {
	return d.actualValues.Snapshot()
}

// LastPhaseResult 最近一次阶段结果
func (d *Driver) LastPhaseResult() (sciencemode.PhaseResultSample, bool) {
	return d.phaseResults.Last()
}

// LastSent 最近一次发出的原始帧（调试用）
func (d *Driver) LastSent() []byte {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.lastSent
}

// writeFrame 编码并写出一帧，随后推进序号、刷新时间戳并记录发送历史。
// 整个过程持写锁，保证帧按 Send 调用顺序上线、序号单调递增（mod 256）。
func (d *Driver) writeFrame(cmd sciencemode.Command, payload []byte) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	raw, err := sciencemode.Encode(d.seq, cmd, payload)
	if err != nil {
		return err
	}
	if err := d.tr.Write(raw); err != nil {
		return fmt.Errorf("transport write: %w", err)
	}
	seq := d.seq
	d.seq++ // byte 溢出即 mod 256 回绕
	d.lastSend = d.clock.Now()
	d.lastSent = raw
	d.m.TxTotal.WithLabelValues(cmd.String()).Inc()
	if cmd == sciencemode.CmdWatchdog {
		d.log.Debug("keep-alive sent", zap.Uint8("seq", seq))
	} else {
		d.log.Info("command sent", zap.Stringer("cmd", cmd), zap.Uint8("seq", seq))
	}
	return nil
}

func (d *Driver) lastSendTime() time.Time {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.lastSend
}

func (d *Driver) isLinkUp() bool {
	d.connMu.Lock()
	defer d.connMu.Unlock()
	return d.connected
}

// reportLoopError 后台循环内部错误：限频记录，不终止循环
func (d *Driver) reportLoopError(stage string, err error) {
	if d.errLimit.Allow() {
		d.log.Warn("background loop error", zap.String("stage", stage), zap.Error(err))
	}
}
