package sciencemode

import "fmt"

// ActualValuesSample Motomed 实时遥测（角度/速度/扭矩，有符号）
type ActualValuesSample struct {
	Angle  int
	Speed  int
	Torque int
}

// PhaseResultSample Motomed 阶段结果。线路布局包含全部字段的位置，
// 但设备固件只在部分位置给出有效值：ActiveDistance、PhaseDuration、
// ActivePhaseDuration、PhaseWork 当前不解码，保持零值。
type PhaseResultSample struct {
	PassiveDistance     int
	ActiveDistance      int
	AveragePower        int
	MaximumPower        int
	PhaseDuration       int
	ActivePhaseDuration int
	PhaseWork           int
	SuccessValue        int
	Symmetry            int
	AverageMuscleTone   int
}

// signedInt 按8位有符号解释单个线路字节
func signedInt(b byte) int { return int(int8(b)) }

// DecodeActualValues 解析 ActualValues 帧。三个字段逐个走两态
// {普通, 被填充}：字段预期位置若为填充标记，则多消费一个字节、
// 对其做逆变换，并把累计偏移向后推一位以定位后续字段。
func DecodeActualValues(f Frame) (ActualValuesSample, error) {
	var s ActualValuesSample
	need := func(i int) error {
		if i >= len(f)-1 { // 最后一个字节是停止标记
			return fmt.Errorf("%w: need index %d, frame %d bytes", ErrTruncatedPayload, i, len(f))
		}
		return nil
	}

	count := 0
	if err := need(8); err != nil {
		return s, err
	}
	if f[8] == StuffingByte {
		if err := need(9); err != nil {
			return s, err
		}
		s.Angle = 255*signedInt(f[7]) + int(Stuff(f[9]))
		count++
	} else {
		s.Angle = 255*signedInt(f[7]) + int(f[8])
	}

	if err := need(10 + count); err != nil {
		return s, err
	}
	if f[10+count] == StuffingByte {
		if err := need(11 + count); err != nil {
			return s, err
		}
		s.Speed = signedInt(Stuff(f[11+count]))
		count++
	} else {
		s.Speed = signedInt(f[10+count])
	}

	if err := need(12 + count); err != nil {
		return s, err
	}
	if f[12+count] == StuffingByte {
		if err := need(13 + count); err != nil {
			return s, err
		}
		s.Torque = signedInt(Stuff(f[13+count]))
	} else {
		s.Torque = signedInt(f[12+count])
	}
	return s, nil
}

// DecodePhaseResult 解析 PhaseResult 帧：15个字节按固定偏移读取，
// 不做填充处理。与 ActualValues 的两态走读不对称，设备在这些位置
// 从不发送保留字节，保持与固件实测行为一致。
func DecodePhaseResult(f Frame) (PhaseResultSample, error) {
	var s PhaseResultSample
	if len(f) < 24 { // 字段区覆盖到偏移22，加停止标记
		return s, fmt.Errorf("%w: frame %d bytes", ErrTruncatedPayload, len(f))
	}
	s.PassiveDistance = int(f[8])*255 + int(f[9])
	s.AveragePower = int(f[12])
	s.MaximumPower = int(f[13])
	s.SuccessValue = int(f[20])
	s.Symmetry = int(f[21])
	s.AverageMuscleTone = int(f[22])
	return s, nil
}
