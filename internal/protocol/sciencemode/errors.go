package sciencemode

import "errors"

var (
	// ErrFrameTooLong 组帧后超出协议最大帧长（69字节）
	ErrFrameTooLong = errors.New("frame exceeds protocol maximum")
	// ErrMalformedFrame 帧结构不完整（缺少起止标记或填充前缀）
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrChecksumMismatch CRC-8校验失败
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrUnknownCommand 命令码不在协议枚举内
	ErrUnknownCommand = errors.New("unknown command code")
	// ErrTruncatedPayload 遥测帧长度不足以覆盖字段布局
	ErrTruncatedPayload = errors.New("truncated telemetry payload")
)
