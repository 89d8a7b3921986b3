package driver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
)

// watchdogLoop 保活循环：链路空闲超过 WatchdogInterval 时发送一帧
// 零载荷 Watchdog，随后休眠一个完整周期；否则以 IdlePoll 粒度复查。
// 每轮循环顶部观察连接标记，断链后最多一个节拍内退出。
// 保活发送失败按传输层错误记录，循环继续，下个周期重试。
func (d *Driver) watchdogLoop(ctx context.Context) {
	defer d.wg.Done()
	for {
		if ctx.Err() != nil || !d.isLinkUp() {
			return
		}
		if d.clock.Now().Sub(d.lastSendTime()) > d.cfg.WatchdogInterval {
			if err := d.writeFrame(sciencemode.CmdWatchdog, nil); err != nil {
				d.log.Warn("keep-alive transmit failed", zap.Error(err))
			} else {
				d.m.WatchdogTotal.Inc()
			}
			if !d.sleep(ctx, d.cfg.WatchdogInterval) {
				return
			}
			continue
		}
		if !d.sleep(ctx, d.cfg.IdlePoll) {
			return
		}
	}
}

// sleep 可取消休眠；返回 false 表示 ctx 已结束
func (d *Driver) sleep(ctx context.Context, dur time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-d.clock.After(dur):
		return true
	}
}
