package driver

import "context"

// readerLoop Motomed 会话的后台读取循环：每个节拍把传输层的字节重组成
// 候选帧并逐帧分发。解码/分发错误只上报不退出，循环在下个节拍继续。
func (d *Driver) readerLoop(ctx context.Context) {
	defer d.wg.Done()
	for {
		frames, err := d.reasm.ReadFrames(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			d.reportLoopError("read", err)
		}
		for _, f := range frames {
			if err := d.dispatch(f); err != nil {
				d.reportLoopError("dispatch", err)
			}
		}
		if !d.sleep(ctx, d.cfg.ReaderPoll) {
			return
		}
	}
}
