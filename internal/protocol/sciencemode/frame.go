// Package sciencemode 实现 Rehastim 串口链路的 ScienceMode2 二进制帧协议：
// 带字节填充与CRC-8的帧编解码、流式重组以及 Motomed 遥测解析。
package sciencemode

// 线路常量（厂商协议文档 2.2 Packet Structure）
// 布局：start(F0) | 81 stuffed-crc | 81 stuffed-len | seq | cmd | data... | stop(0F)
const (
	StartByte    = 0xF0
	StopByte     = 0x0F
	StuffingByte = 0x81
	StuffingKey  = 0x55

	// MaxFrameBytes 单帧编码后字节数上限
	MaxFrameBytes = 69

	// minFrameBytes 最小完整帧：start + 2字节校验块 + 2字节长度块 + seq + cmd + stop
	minFrameBytes = 8

	// 接收侧固定偏移（与设备侧发送布局一致）
	offChecksum = 2
	offLength   = 4
	offSequence = 5
	offCommand  = 6
	offData     = 7
)

// Frame 一帧完整的原始字节（含起止标记）。接收路径按固定偏移直接访问，
// 头部字节不做解填充（见 DecodeHeader 的说明）。
type Frame []byte

// SequenceByte 返回线路上的序号字节（原始值，可能被原地填充过）
func (f Frame) SequenceByte() byte { return f[offSequence] }

// CommandByte 返回线路上的命令码字节（原始值）
func (f Frame) CommandByte() byte { return f[offCommand] }

// Command 对命令码字节做全量解码
func (f Frame) Command() (Command, error) { return CommandFromByte(f[offCommand]) }

// Data 返回数据区（不含头部与停止标记，仍为填充后的线路字节）
func (f Frame) Data() []byte {
	if len(f) <= offData+1 {
		return nil
	}
	return f[offData : len(f)-1]
}
