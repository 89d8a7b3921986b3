package sciencemode

import "fmt"

// Encode 构造一帧待发送字节。
// 载荷块 = 原地填充的 [seq, cmd] + 标记填充后的 data；校验和与长度字节
// 无条件做填充变换并各自带 0x81 前缀；整帧超过 MaxFrameBytes 时报 ErrFrameTooLong。
func Encode(seq byte, cmd Command, payload []byte) ([]byte, error) {
	block := make([]byte, 0, 2+2*len(payload))
	block = append(block, stuffHeaderByte(seq), stuffHeaderByte(byte(cmd)))
	for _, b := range payload {
		if isReserved(b) {
			block = append(block, StuffingByte, Stuff(b))
		} else {
			block = append(block, b)
		}
	}

	total := len(block) + 6 // start + 2校验块 + 2长度块 + stop
	if total > MaxFrameBytes {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrFrameTooLong, total, MaxFrameBytes)
	}

	out := make([]byte, 0, total)
	out = append(out, StartByte,
		StuffingByte, Stuff(CRC8(block)),
		StuffingByte, Stuff(byte(len(block))))
	out = append(out, block...)
	out = append(out, StopByte)
	return out, nil
}

// DecodeHeader 还原头部的 (seq, cmd)。头部采用无标记的原地填充，
// 接收侧无法区分“被填充过的保留字节”与“恰好等于其像的普通值”，
// 因此这不是经过校验的往返解码，仅按逆变换尽力还原。
func DecodeHeader(f Frame) (seq byte, cmd byte, err error) {
	if len(f) < minFrameBytes {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrMalformedFrame, len(f))
	}
	return unstuffHeaderByte(f[offSequence]), unstuffHeaderByte(f[offCommand]), nil
}

// Verify 校验一帧接收字节的结构与CRC。
// 结构缺陷（起止标记、填充前缀、长度不符）报 ErrMalformedFrame，
// CRC不符报 ErrChecksumMismatch。
func Verify(f Frame) error {
	if len(f) < minFrameBytes {
		return fmt.Errorf("%w: short frame (%d bytes)", ErrMalformedFrame, len(f))
	}
	if f[0] != StartByte || f[len(f)-1] != StopByte {
		return fmt.Errorf("%w: missing start/stop marker", ErrMalformedFrame)
	}
	if f[1] != StuffingByte || f[3] != StuffingByte {
		return fmt.Errorf("%w: missing stuffing prefix", ErrMalformedFrame)
	}
	block := f[offSequence : len(f)-1]
	if int(Stuff(f[offLength])) != len(block) {
		return fmt.Errorf("%w: length byte %d != block size %d",
			ErrMalformedFrame, Stuff(f[offLength]), len(block))
	}
	if got, want := CRC8(block), Stuff(f[offChecksum]); got != want {
		return fmt.Errorf("%w: got 0x%02X want 0x%02X", ErrChecksumMismatch, got, want)
	}
	return nil
}
