package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// 设备侧串口参数固定：460800 8E1，短读超时用于空闲判定
const (
	DefaultBaudRate    = 460800
	DefaultReadTimeout = 100 * time.Millisecond
)

// SerialConfig 串口打开参数
type SerialConfig struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration
}

// SerialPort 基于 go.bug.st/serial 的链路实现
type SerialPort struct {
	port serial.Port
	buf  []byte
}

// OpenSerial 打开串口并套用协议要求的帧格式（8数据位、偶校验、1停止位）
func OpenSerial(cfg SerialConfig) (*SerialPort, error) {
	if cfg.BaudRate <= 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &SerialPort{port: port, buf: make([]byte, 256)}, nil
}

// Write 整帧写入
func (s *SerialPort) Write(p []byte) error {
	for len(p) > 0 {
		n, err := s.port.Write(p)
		if err != nil {
			return fmt.Errorf("serial write: %w", err)
		}
		p = p[n:]
	}
	return nil
}

// ReadAvailable 读取当前可用字节；读超时返回空切片
func (s *SerialPort) ReadAvailable() ([]byte, error) {
	n, err := s.port.Read(s.buf)
	if err != nil {
		return nil, fmt.Errorf("serial read: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	copy(out, s.buf[:n])
	return out, nil
}

// Close 关闭串口
func (s *SerialPort) Close() error { return s.port.Close() }
