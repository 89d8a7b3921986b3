package driver

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taoyao-code/rehastim/internal/protocol/sciencemode"
)

// dispatch 对一帧已重组的候选帧做分类与路由：
// 遥测帧进解码器与环形缓冲，完成帧置完成事件，初始化帧进 init 信箱，
// 其余已知命令进通用应答信箱；枚举外的命令码返回 ErrUnknownCommand，
// 由调用方决定忽略还是上报。进入分类前先做结构与CRC校验，失败帧丢弃。
func (d *Driver) dispatch(f sciencemode.Frame) error {
	if err := sciencemode.Verify(f); err != nil {
		d.countVerifyFailure(err)
		return err
	}
	d.m.RxTotal.WithLabelValues("ok").Inc()

	switch sciencemode.Command(f.CommandByte()) {
	case sciencemode.CmdPhaseResult:
		s, err := sciencemode.DecodePhaseResult(f)
		if err != nil {
			d.m.RxTotal.WithLabelValues("truncated").Inc()
			return fmt.Errorf("phase result: %w", err)
		}
		d.phaseResults.Push(s)
		d.m.TelemetryTotal.WithLabelValues("phase_result").Inc()
	case sciencemode.CmdActualValues:
		s, err := sciencemode.DecodeActualValues(f)
		if err != nil {
			d.m.RxTotal.WithLabelValues("truncated").Inc()
			return fmt.Errorf("actual values: %w", err)
		}
		d.actualValues.Push(s)
		d.m.TelemetryTotal.WithLabelValues("actual_values").Inc()
	case sciencemode.CmdMotomedError:
		// 设备保留通道，按协议约定忽略
	case sciencemode.CmdMotomedCommandDone:
		d.done.Set()
	case sciencemode.CmdInit:
		d.initBox.Put(f)
	default:
		cmd, err := f.Command()
		if err != nil {
			d.m.RxTotal.WithLabelValues("unknown_cmd").Inc()
			return err
		}
		d.ackBox.Put(f)
		d.log.Debug("ack received", zap.Stringer("cmd", cmd))
	}

	if cmd, err := f.Command(); err == nil {
		d.m.RouteTotal.WithLabelValues(cmd.String()).Inc()
	}
	return nil
}

func (d *Driver) countVerifyFailure(err error) {
	if errors.Is(err, sciencemode.ErrChecksumMismatch) {
		d.m.RxTotal.WithLabelValues("checksum").Inc()
		return
	}
	d.m.RxTotal.WithLabelValues("malformed").Inc()
}
